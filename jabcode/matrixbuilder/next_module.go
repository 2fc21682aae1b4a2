package matrixbuilder

// NextMetadataModuleInMaster advances (x,y) to the next module on the master symbol's metadata
// snake path, given the index of the module about to be visited (1-based "next_module_count").
// Ported from getNextMetadataModuleInMaster in decoder.c (shared verbatim by the encoder and
// decoder): every four-step group traces a small L-shape, and the traversal transposes X/Y at
// indices 44, 96 and 156.
func NextMetadataModuleInMaster(matrixHeight, matrixWidth, nextModuleCount int, x, y *int) {
	if nextModuleCount%4 == 0 || nextModuleCount%4 == 2 {
		*y = matrixHeight - 1 - *y
	}
	if nextModuleCount%4 == 1 || nextModuleCount%4 == 3 {
		*x = matrixWidth - 1 - *x
	}
	if nextModuleCount%4 == 0 {
		switch {
		case nextModuleCount <= 20,
			nextModuleCount >= 44 && nextModuleCount <= 68,
			nextModuleCount >= 96 && nextModuleCount <= 124,
			nextModuleCount >= 156 && nextModuleCount <= 172:
			*y++
		case nextModuleCount > 20 && nextModuleCount < 44,
			nextModuleCount > 68 && nextModuleCount < 96,
			nextModuleCount > 124 && nextModuleCount < 156:
			*x--
		}
	}
	if nextModuleCount == 44 || nextModuleCount == 96 || nextModuleCount == 156 {
		*x, *y = *y, *x
	}
}
