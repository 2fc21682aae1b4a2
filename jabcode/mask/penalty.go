// Package mask evaluates and applies the eight XOR data-masking patterns used to smooth the
// color distribution of a symbol's data modules before rasterization.
package mask

import "github.com/jabcode/jabcode/jabcode/colorspace"

// Penalty rule weights, mirroring mask.c's W1/W2/W3.
const (
	ruleWeight1 = 100
	ruleWeight2 = 3
	ruleWeight3 = 3
)

// unfilled marks a matrix cell that belongs to no symbol; rules 2 and 3 skip it, rule 1 never
// matches against it. Masks are scored per symbol, so no merged multi-symbol matrix is built.
const unfilled = -1

// finderPatternColors returns the two alternating colors (c1, c2) used by each of the four
// finder-pattern corners for a given color_number, per applyRule1's color_number switch.
func finderPatternColors(colorNumber int) (fp0c1, fp0c2, fp1c1, fp1c2, fp2c1, fp2c2, fp3c1, fp3c2 int) {
	switch colorNumber {
	case 2:
		return 0, 1, 1, 0, 1, 0, 1, 0
	case 4:
		return 0, 3, 1, 2, 2, 1, 3, 0
	default:
		return colorspace.FP0CoreColor, 7 - colorspace.FP0CoreColor,
			colorspace.FP1CoreColor, 7 - colorspace.FP1CoreColor,
			colorspace.FP2CoreColor, 7 - colorspace.FP2CoreColor,
			colorspace.FP3CoreColor, 7 - colorspace.FP3CoreColor
	}
}

// applyRule1 penalizes any 5x5 cross that looks like one of the four finder patterns, wherever
// it occurs in the matrix, since such a cross could be mistaken for a real finder pattern by a
// detector.
func applyRule1(matrix [][]int, colorNumber int) int {
	fp0c1, fp0c2, fp1c1, fp1c2, fp2c1, fp2c2, fp3c1, fp3c2 := finderPatternColors(colorNumber)
	height := len(matrix)
	width := len(matrix[0])

	matches := func(i, j, c1, c2 int) bool {
		return matrix[i][j-2] == c1 && matrix[i][j-1] == c2 && matrix[i][j] == c1 &&
			matrix[i][j+1] == c2 && matrix[i][j+2] == c1 &&
			matrix[i-2][j] == c1 && matrix[i-1][j] == c2 &&
			matrix[i+1][j] == c2 && matrix[i+2][j] == c1
	}

	score := 0
	for i := 2; i <= height-3; i++ {
		for j := 2; j <= width-3; j++ {
			switch {
			case matches(i, j, fp0c1, fp0c2):
				score++
			case matches(i, j, fp1c1, fp1c2):
				score++
			case matches(i, j, fp2c1, fp2c2):
				score++
			case matches(i, j, fp3c1, fp3c2):
				score++
			}
		}
	}
	return ruleWeight1 * score
}

// applyRule2 penalizes each 2x2 block of identically-colored modules.
func applyRule2(matrix [][]int) int {
	height := len(matrix)
	width := len(matrix[0])
	score := 0
	for i := 0; i < height-1; i++ {
		for j := 0; j < width-1; j++ {
			c := matrix[i][j]
			if c == unfilled || matrix[i][j+1] == unfilled || matrix[i+1][j] == unfilled || matrix[i+1][j+1] == unfilled {
				continue
			}
			if c == matrix[i][j+1] && c == matrix[i+1][j] && c == matrix[i+1][j+1] {
				score++
			}
		}
	}
	return ruleWeight2 * score
}

// applyRule3 penalizes runs of 5 or more same-colored modules along any row or column.
func applyRule3(matrix [][]int) int {
	height := len(matrix)
	width := len(matrix[0])
	score := 0
	for k := 0; k < 2; k++ {
		maxI, maxJ := height, width
		if k == 1 {
			maxI, maxJ = width, height
		}
		for i := 0; i < maxI; i++ {
			sameColorCount := 0
			prevColor := unfilled
			for j := 0; j < maxJ; j++ {
				var cur int
				if k == 0 {
					cur = matrix[i][j]
				} else {
					cur = matrix[j][i]
				}
				if cur != unfilled {
					if cur == prevColor {
						sameColorCount++
					} else {
						if sameColorCount >= 5 {
							score += ruleWeight3 + (sameColorCount - 5)
						}
						sameColorCount = 1
						prevColor = cur
					}
				} else {
					if sameColorCount >= 5 {
						score += ruleWeight3 + (sameColorCount - 5)
					}
					sameColorCount = 0
					prevColor = unfilled
				}
			}
			if sameColorCount >= 5 {
				score += ruleWeight3 + (sameColorCount - 5)
			}
		}
	}
	return score
}

// Evaluate sums the three penalty rules over matrix, mirroring evaluateMask.
func Evaluate(matrix [][]int, colorNumber int) int {
	return applyRule1(matrix, colorNumber) + applyRule2(matrix) + applyRule3(matrix)
}
