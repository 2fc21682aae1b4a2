// Command jabcode-encode renders a payload (from a file or stdin) into a JABCode PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jabcode/jabcode/jabcode"
)

const (
	logPath      = "jabcode-encode.log"
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
	in := flag.String("in", "", "input file to encode; reads stdin when empty")
	out := flag.String("out", "out.png", "output PNG path")
	colorNumber := flag.Int("colors", 8, "palette size: 4, 8, 16, 32, 64, 128 or 256")
	moduleSize := flag.Int("module-size", 12, "pixels per module")
	eccLevel := flag.Int("ecc", 0, "ECC level 1-10, 0 for default")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()

	payload, err := readInput(*in)
	if err != nil {
		log.Fatal("reading input", zap.Error(err))
	}

	cfg := jabcode.EncodeConfig{
		ColorNumber:     *colorNumber,
		ModuleSize:      *moduleSize,
		SymbolPositions: []int{0},
		SymbolECCLevels: []int{*eccLevel},
	}

	bmp, err := jabcode.Encode(payload, cfg)
	if err != nil {
		log.Fatal("encode failed", zap.Error(err), zap.Int("payloadBytes", len(payload)))
	}
	log.Info("encoded", zap.Int("width", bmp.Width), zap.Int("height", bmp.Height), zap.Int("payloadBytes", len(payload)))

	if err := writePNG(*out, bmp); err != nil {
		log.Fatal("writing output", zap.Error(err), zap.String("path", *out))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writePNG(path string, bmp *jabcode.Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, bmp.Width, bmp.Height))
	for y := 0; y < bmp.Height; y++ {
		for x := 0; x < bmp.Width; x++ {
			r, g, b, a := bmp.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return png.Encode(f, img)
}
