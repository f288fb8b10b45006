package predictor

// Description summarises the loaded artifacts.
type Description struct {
	ModelKind string
	ModelName string
	Features  []string
	Classes   []string
	// Trees is the ensemble size, or 0 for models that are not tree ensembles.
	Trees      int
	Vocabulary map[string]int
	Artifacts  Artifacts

	// Digests are empty for engines built with New.
	ModelSHA256    string
	EncodersSHA256 string
}

// Describe returns metadata about the engine's model and encoders.
func (e *Engine) Describe() Description {
	var trees int
	if ens, ok := e.clf.(interface{ Size() int }); ok {
		trees = ens.Size()
	}
	return Description{
		ModelKind:      e.clf.Kind(),
		ModelName:      e.clf.Name(),
		Features:       e.clf.Features(),
		Classes:        e.clf.Classes(),
		Trees:          trees,
		Vocabulary:     e.reg.Sizes(),
		Artifacts:      e.artifacts,
		ModelSHA256:    e.modelSum,
		EncodersSHA256: e.encodersSum,
	}
}
