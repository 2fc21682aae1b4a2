package ldpc

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// ErrTooManyErrors is returned when a received codeword has more bit errors than the decoder's
// iteration budget can correct.
var ErrTooManyErrors = errors.New("ldpc: too many errors, decoding failed")

const maxDecodeIterations = 25

func checkSyndrome(a *BitMatrix, rank int, data []byte, offset, length int) bool {
	for i := 0; i < rank; i++ {
		var temp byte
		for j := 0; j < length; j++ {
			if a.Get(i, j) {
				temp ^= data[offset+j] & 1
			}
		}
		if temp != 0 {
			return false
		}
	}
	return true
}

// decodeMessageHard is the iterative hard-decision bit-flipping decoder: each round tallies, per
// bit position, how many unsatisfied parity checks it participates in, then flips the position(s)
// with the highest tally (a single random pick among ties for short codewords, all of them at once
// for longer ones). Ported from original_source/src/jabcode/ldpc.c decodeMessage.
func decodeMessageHard(data []byte, a *BitMatrix, length, height, maxIter, startPos int, tieBreak *rand.Rand) bool {
	maxVal := make([]int, length)
	equalMax := make([]int, length)
	var prevIndex []int
	prevCount := 0
	isCorrect := false

	for kl := 0; kl < maxIter; kl++ {
		max := 0
		for j := 0; j < height; j++ {
			var check byte
			for i := 0; i < length; i++ {
				if a.Get(j, i) && data[startPos+i]&1 == 1 {
					check ^= 1
				}
			}
			if check == 1 {
				for k := 0; k < length; k++ {
					if a.Get(j, k) {
						maxVal[k]++
					}
				}
			}
		}

		counter := 0
		for j := 0; j < length; j++ {
			used := false
			for i := 0; i < prevCount; i++ {
				if prevIndex[i] == j {
					used = true
					break
				}
			}
			if maxVal[j] >= max && !used {
				if maxVal[j] != max {
					counter = 0
				}
				max = maxVal[j]
				equalMax[counter] = j
				counter++
			}
			maxVal[j] = 0
		}

		if max > 0 {
			isCorrect = false
			if length < 36 {
				pick := equalMax[tieBreak.Intn(counter)]
				prevIndex = []int{startPos + pick}
				data[startPos+pick] = (data[startPos+pick] + 1) % 2
			} else {
				prevIndex = make([]int, counter)
				for j := 0; j < counter; j++ {
					prevIndex[j] = startPos + equalMax[j]
					data[startPos+equalMax[j]] = (data[startPos+equalMax[j]] + 1) % 2
				}
			}
			prevCount = counter
		} else {
			isCorrect = true
		}

		if isCorrect {
			break
		}
	}
	return isCorrect
}

// decodeMessageBP is the belief-propagation soft decoder: check nodes exchange tanh-domain
// extrinsic messages (nu) with variable nodes over maxIter rounds, and each round's tentative
// hard decision (dec) is accepted once it satisfies every parity check. Ported from
// original_source/src/jabcode/ldpc.c decodeMessageBP.
func decodeMessageBP(enc []float64, dec []byte, a *BitMatrix, length, checkbits, height, maxIter, startPos int) bool {
	lambda := make([]float64, length)
	nu := make([][]float64, height)
	for j := range nu {
		nu[j] = make([]float64, length)
	}

	for i := length - 1; i >= length-(height-checkbits); i-- {
		enc[startPos+i] = 1.0
		dec[startPos+i] = 0
	}

	_, variance := stat.MeanVariance(enc[startPos:startPos+length], nil)

	for i := 0; i < length; i++ {
		if dec[startPos+i] != 0 {
			enc[startPos+i] = -enc[startPos+i]
		}
		lambda[i] = 2.0 * enc[startPos+i] / variance
	}

	isCorrect := false
	oldNuRow := make([]float64, height)
	for kl := 0; kl < maxIter; kl++ {
		for j := 0; j < height; j++ {
			product := 1.0
			var idx []int
			for i := 0; i < length; i++ {
				if a.Get(j, i) {
					if kl == 0 {
						product *= math.Tanh(lambda[i] * 0.5)
					} else {
						product *= math.Tanh(nu[j][i] * 0.5)
					}
					idx = append(idx, i)
				}
			}
			for _, i := range idx {
				var num, denum float64
				switch {
				case kl > 0 && math.Tanh(nu[j][i]*0.5) != 0.0:
					t := math.Tanh(nu[j][i] * 0.5)
					num, denum = 1+product/t, 1-product/t
				case kl == 0 && math.Tanh(lambda[i]*0.5) != 0.0:
					t := math.Tanh(lambda[i] * 0.5)
					num, denum = 1+product/t, 1-product/t
				default:
					num, denum = 1+product, 1-product
				}
				switch {
				case num == 0.0:
					nu[j][i] = -1
				case denum == 0.0:
					nu[j][i] = 1
				default:
					nu[j][i] = math.Log(num / denum)
				}
			}
		}

		for i := 0; i < length; i++ {
			var sum float64
			for k := 0; k < height; k++ {
				sum += nu[k][i]
				oldNuRow[k] = nu[k][i]
			}
			for k := 0; k < height; k++ {
				if a.Get(k, i) {
					nu[k][i] = lambda[i] + (sum - oldNuRow[k])
				}
			}
			lambda[i] = 2.0*enc[startPos+i]/variance + sum
			if lambda[i] < 0 {
				dec[startPos+i] = 1
			} else {
				dec[startPos+i] = 0
			}
		}

		isCorrect = checkSyndrome(a, height, dec, startPos, length)
		if isCorrect {
			break
		}
	}
	return isCorrect
}

// planDecode mirrors decodeLDPChd/decodeLDPC's leading Pg/Pn/wc derivation: wr>3 selects the
// regular code-rate formula; wr<=3 (including the metadata case, wr==0) treats the whole buffer
// as one block and derives wc from the message length instead of trusting the caller's value.
func planDecode(length, wc, wr int) (pg, pn, effectiveWc int) {
	if wr > 3 {
		pg = wr * (length / wr)
		pn = pg * (wr - wc) / wr
		return pg, pn, wc
	}
	pg = length
	pn = length / 2
	effectiveWc = 2
	if pn > 36 {
		effectiveWc = 3
	}
	return pg, pn, effectiveWc
}

// DecodeHard runs the hard-decision LDPC decoder over a received 0/1-byte codeword and returns the
// recovered message bytes, correcting bit-flip errors via decodeMessageHard where the parity check
// fails. Ported from original_source/src/jabcode/ldpc.c decodeLDPChd.
func DecodeHard(data []byte, wc, wr int, seed uint64) ([]byte, error) {
	length := len(data)
	pg, pn, effWc := planDecode(length, wc, wr)
	pgSub, pnSub, nbSubBlocks, decodingIterations := blockPlan(pg, pn, effWc, wr)

	a := buildMatrix(effWc, wr, pgSub, seed)
	rank := gaussJordan(a, false)

	tieBreak := rand.New(rand.NewSource(int64(seed)))
	oldPgSub, oldPnSub := pgSub, pnSub

	for iter := 0; iter < nbSubBlocks; iter++ {
		curA, curRank, curPgSub, curPnSub := a, rank, pgSub, pnSub
		if decodingIterations != nbSubBlocks && iter == decodingIterations {
			curPgSub = pg - decodingIterations*pgSub
			curPnSub = curPgSub * (wr - effWc) / wr
			curA = createMatrixA(effWc, wr, curPgSub, seed)
			curRank = gaussJordan(curA, false)
		}

		offset := iter * oldPgSub
		ok := checkSyndrome(curA, curRank, data, offset, curPgSub)
		if !ok {
			ok = decodeMessageHard(data, curA, curPgSub, curRank, maxDecodeIterations, offset, tieBreak)
		}
		if !ok {
			ok = checkSyndrome(curA, curRank, data, offset, curPgSub)
		}
		if !ok {
			return nil, ErrTooManyErrors
		}

		for i, loop := offset, 0; i < offset+curPnSub; i, loop = i+1, loop+1 {
			data[iter*oldPnSub+loop] = data[i+curRank]
		}
	}
	return data[:pn], nil
}

// DecodeSoft runs the belief-propagation soft-decision LDPC decoder over per-bit reliability
// values and returns the recovered message bytes. Ported from
// original_source/src/jabcode/ldpc.c decodeLDPC.
func DecodeSoft(enc []float64, wc, wr int, seed uint64) ([]byte, error) {
	length := len(enc)
	pg, pn, effWc := planDecode(length, wc, wr)
	pgSub, pnSub, nbSubBlocks, decodingIterations := blockPlan(pg, pn, effWc, wr)

	dec := make([]byte, length)

	a := buildMatrix(effWc, wr, pgSub, seed)
	rank := gaussJordan(a, false)

	oldPgSub, oldPnSub := pgSub, pnSub

	for iter := 0; iter < nbSubBlocks; iter++ {
		curA, curRank, curPgSub, curPnSub := a, rank, pgSub, pnSub
		if decodingIterations != nbSubBlocks && iter == decodingIterations {
			curPgSub = pg - decodingIterations*pgSub
			curPnSub = curPgSub * (wr - effWc) / wr
			curA = createMatrixA(effWc, wr, curPgSub, seed)
			curRank = gaussJordan(curA, false)
		}

		offset := iter * oldPgSub
		for i := offset; i < offset+curPgSub; i++ {
			if enc[i] < 0 {
				dec[i] = 1
			}
		}
		ok := checkSyndrome(curA, curRank, dec, offset, curPgSub)
		if !ok {
			for i := offset; i < offset+curPgSub; i++ {
				dec[i] = 0
			}
			height := curPgSub / 2
			if wr >= 4 {
				height = curPgSub / wr * effWc
			}
			ok = decodeMessageBP(enc, dec, curA, curPgSub, curRank, height, maxDecodeIterations, offset)
		}
		if !ok {
			return nil, ErrTooManyErrors
		}

		for i, loop := offset, 0; i < offset+curPnSub; i, loop = i+1, loop+1 {
			dec[iter*oldPnSub+loop] = dec[i+curRank]
		}
	}
	return dec[:pn], nil
}
