package document

// Merge deep-merges mapping b into mapping a in place and returns a. When
// both sides hold a nested mapping at the same key the merge recurses;
// otherwise b's value overwrites a's. Used to combine user-declared options
// with defaults and to merge declared extension properties into a generated
// entry.
func Merge(a, b Document) Document {
	if a == nil {
		a = Document{}
	}
	for k, bv := range b {
		av, exists := a[k]
		if exists {
			am, aok := asDocument(av)
			bm, bok := asDocument(bv)
			if aok && bok {
				a[k] = Merge(am, bm)
				continue
			}
		}
		a[k] = bv
	}
	return a
}
