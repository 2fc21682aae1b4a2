package ldpc

// gaussJordan reduces the (nbPCB x capacity) parity-check matrix a in place to a row/column
// arrangement equivalent to [I | C] (plus any all-zero rows for a rank-deficient matrix), and
// returns its rank. When encode is true a is read as the raw Gallager matrix and rewritten in
// reduced form (used by the encoder to build the generator matrix); when false a keeps its raw
// rows, which are only reordered by the same row arrangement and have the same column swaps
// applied (used by the decoders, which check a received codeword against the raw matrix in the
// encoder's column order).
//
// Ported from original_source/src/jabcode/ldpc.c GaussJordan, preserving its column_arrangement /
// swap_col bookkeeping exactly; BitMatrix.Get/Set/RowXOR stand in for the C source's inline
// packed-word bit arithmetic.
func gaussJordan(a *BitMatrix, encode bool) (rank int) {
	nbPCB := a.Rows()
	capacity := a.Cols()

	h := NewBitMatrix(nbPCB, capacity)
	for i := 0; i < nbPCB; i++ {
		h.CopyRow(i, a, i)
	}

	columnArrangement := make([]int, capacity)
	processedColumn := make([]bool, capacity)
	zeroLinesNb := make([]int, nbPCB)
	swapCol := make([][2]int, capacity) // at most `capacity` swap pairs are ever recorded
	zeroLines := 0
	loop := 0

	for i := 0; i < nbPCB; i++ {
		pivot := capacity
		for j := 0; j < capacity; j++ {
			if h.Get(i, j) {
				pivot = j
				break
			}
		}
		if pivot < capacity {
			processedColumn[pivot] = true
			columnArrangement[pivot] = i
			if pivot >= nbPCB {
				swapCol[loop] = [2]int{pivot, 0}
				loop++
			}
			for j := 0; j < nbPCB; j++ {
				if j != i && h.Get(j, pivot) {
					h.RowXOR(j, i)
				}
			}
		} else {
			zeroLinesNb[zeroLines] = i
			zeroLines++
		}
	}

	rank = nbPCB - zeroLines
	loop2 := 0
	for i := rank; i < nbPCB; i++ {
		if columnArrangement[i] > 0 {
			for j := 0; j < nbPCB; j++ {
				if !processedColumn[j] {
					columnArrangement[j] = columnArrangement[i]
					processedColumn[j] = true
					processedColumn[i] = false
					swapCol[loop] = [2]int{i, j}
					columnArrangement[i] = j
					loop++
					loop2++
					break
				}
			}
		}
	}

	loop1 := 0
	for kl := 0; kl < nbPCB; kl++ {
		if !processedColumn[kl] && loop1 < loop-loop2 {
			columnArrangement[kl] = columnArrangement[swapCol[loop1][0]]
			processedColumn[kl] = true
			swapCol[loop1][1] = kl
			loop1++
		}
	}

	loop1 = 0
	for kl := 0; kl < nbPCB; kl++ {
		if !processedColumn[kl] {
			columnArrangement[kl] = zeroLinesNb[loop1]
			loop1++
		}
	}

	if encode {
		for i := 0; i < nbPCB; i++ {
			a.CopyRow(i, h, columnArrangement[i])
		}
		for i := 0; i < loop; i++ {
			a.SwapCols(swapCol[i][0], swapCol[i][1])
		}
	} else {
		for i := 0; i < nbPCB; i++ {
			h.CopyRow(i, a, columnArrangement[i])
		}
		for i := 0; i < loop; i++ {
			h.SwapCols(swapCol[i][0], swapCol[i][1])
		}
		for i := 0; i < nbPCB; i++ {
			a.CopyRow(i, h, i)
		}
	}

	return rank
}
