package ldpc

// createGeneratorMatrix builds the systematic generator matrix G (capacity rows, pn columns) from
// the Gauss-Jordan reduced parity check matrix a (whose first capacity-pn columns now form an
// identity block and whose remaining pn columns form the parity block C), per
// original_source/src/jabcode/ldpc.c createGeneratorMatrix. G's bottom pn rows are the identity
// (systematic message bits passed straight through); its top (capacity-pn) rows are copied
// directly from a's parity block, one output codeword bit per row.
func createGeneratorMatrix(a *BitMatrix, capacity, pn int) *BitMatrix {
	rank := capacity - pn
	g := NewBitMatrix(capacity, pn)
	for i := 0; i < pn; i++ {
		g.Set(capacity-pn+i, i, true)
	}
	for i := 0; i < rank; i++ {
		for j := 0; j < pn; j++ {
			g.Set(i, j, a.Get(i, rank+j))
		}
	}
	return g
}

// Encode runs LDPC encoding of a 0/1-byte message against a (wc, wr)-regular parity check matrix
// seeded with seed, and returns the gross (message + parity) codeword. wr == 0 selects the denser
// metadata matrix construction (createMetadataMatrixA) instead of the regular Gallager one,
// per original_source/src/jabcode/ldpc.c encodeLDPC.
func Encode(data []byte, wc, wr int, seed uint64) ([]byte, error) {
	pn := len(data)
	var pg int
	if wr > 0 {
		pg = ceilDiv(pn*wr, wr-wc)
		pg = wr * ceilDiv(pg, wr)
	} else {
		pg = pn * 2
	}

	pgSub, pnSub, nbSubBlocks, encodingIterations := blockPlan(pg, pn, wc, wr)

	out := make([]byte, pg)
	encodeBlock := func(pgBlock, pnBlock int, msg, dst []byte) {
		a := buildMatrix(wc, wr, pgBlock, seed)
		rank := gaussJordan(a, true)
		g := createGeneratorMatrix(a, pgBlock, pgBlock-rank)
		for i := 0; i < pgBlock; i++ {
			var temp byte
			for j := 0; j < pnBlock; j++ {
				if g.Get(i, j) {
					temp ^= msg[j] & 1
				}
			}
			dst[i] = temp
		}
	}

	for iter := 0; iter < encodingIterations; iter++ {
		encodeBlock(pgSub, pnSub, data[iter*pnSub:(iter+1)*pnSub], out[iter*pgSub:(iter+1)*pgSub])
	}
	if encodingIterations != nbSubBlocks {
		start := encodingIterations * pnSub
		lastIndex := encodingIterations * pgSub
		pgSub2 := pg - encodingIterations*pgSub
		encodeBlock(pgSub2, pn-start, data[start:pn], out[lastIndex:lastIndex+pgSub2])
	}
	return out, nil
}

func buildMatrix(wc, wr, capacity int, seed uint64) *BitMatrix {
	if wr > 0 {
		return createMatrixA(wc, wr, capacity, seed)
	}
	return createMetadataMatrixA(wc, capacity, seed)
}

// blockPlan mirrors encodeLDPC/decodeLDPChd's duplicated sub-block size computation exactly,
// including the "last partial block" adjustment.
func blockPlan(pg, pn, wc, wr int) (pgSub, pnSub, nbSubBlocks, iterations int) {
	nbSubBlocks = 1
	for i := 1; i < 10000; i++ {
		if pg/i < 2700 {
			nbSubBlocks = i
			break
		}
	}
	if wr > 3 {
		pgSub = (pg / nbSubBlocks / wr) * wr
		pnSub = pgSub * (wr - wc) / wr
	} else {
		pgSub = pg
		pnSub = pn
	}
	iterations = pg / pgSub
	if pnSub*iterations < pn {
		iterations--
	}
	return pgSub, pnSub, nbSubBlocks, iterations
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	if a%b == 0 || b < 0 {
		return a / b
	}
	return a/b + 1
}
