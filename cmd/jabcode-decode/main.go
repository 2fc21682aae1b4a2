// Command jabcode-decode recovers a payload from a PNG containing a JABCode symbol.
package main

import (
	"flag"
	"image/png"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jabcode/jabcode/jabcode"
)

const (
	logPath      = "jabcode-decode.log"
	logMaxSizeMB = 50
	logMaxBackup = 3
	logMaxAgeDay = 28
)

func newLogger(verbose bool) *zap.Logger {
	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAgeDay,
	})
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), fileSink, level)
	return zap.New(core)
}

func main() {
	in := flag.String("in", "", "input PNG to decode (required)")
	out := flag.String("out", "", "output file for the recovered payload; writes stdout when empty")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	if *in == "" {
		log.Fatal("missing required -in flag")
	}

	bmp, err := readPNG(*in)
	if err != nil {
		log.Fatal("reading input", zap.Error(err), zap.String("path", *in))
	}

	payload, err := jabcode.Decode(bmp)
	if err != nil {
		log.Fatal("decode failed", zap.Error(err))
	}
	log.Info("decoded", zap.Int("payloadBytes", len(payload)))

	if err := writeOutput(*out, payload); err != nil {
		log.Fatal("writing output", zap.Error(err))
	}
}

func readPNG(path string) (*jabcode.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	bmp := jabcode.NewBitmap(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			bmp.Set(x-bounds.Min.X, y-bounds.Min.Y, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return bmp, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
