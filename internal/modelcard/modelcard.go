// Package modelcard describes the loaded classifier and its encoders as a
// CycloneDX BOM.
package modelcard

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/idlab-discover/salarypred-cli/internal/predictor"
)

const (
	ToolVendor = "idlab-discover"
	ToolName   = "salarypred-cli"

	propertyPrefix = "salarypred:"
)

// Options tweaks the generated BOM. The zero value is usable.
type Options struct {
	ToolVersion string
	// Now is used for the metadata timestamp; time.Now when nil.
	Now func() time.Time
}

// Build assembles a BOM with the model as metadata component and the encoder
// vocabulary file as a data component it depends on.
func Build(d predictor.Description, opts Options) (*cdx.BOM, error) {
	if d.ModelKind == "" {
		return nil, fmt.Errorf("modelcard: description has no model kind")
	}
	logf("build card for %s model %q", d.ModelKind, d.ModelName)

	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	bom.Metadata = &cdx.Metadata{
		Timestamp: now().Format(time.RFC3339),
		Component: modelComponent(d),
	}
	addTool(bom, opts.ToolVersion)

	data := encodersComponent(d)
	bom.Components = &[]cdx.Component{*data}
	addDependencies(bom)
	return bom, nil
}

func modelComponent(d predictor.Description) *cdx.Component {
	name := d.ModelName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(d.Artifacts.ModelPath), filepath.Ext(d.Artifacts.ModelPath))
	}
	if name == "" || name == "." {
		name = "model"
	}

	inputs := make([]cdx.MLInputOutputParameters, 0, len(d.Features))
	for _, f := range d.Features {
		inputs = append(inputs, cdx.MLInputOutputParameters{Format: f})
	}
	outputs := []cdx.MLInputOutputParameters{{Format: strings.Join(d.Classes, "|")}}

	props := []cdx.Property{
		{Name: propertyPrefix + "kind", Value: d.ModelKind},
		{Name: propertyPrefix + "classes", Value: strings.Join(d.Classes, ",")},
	}
	if d.Artifacts.ModelPath != "" {
		props = append(props, cdx.Property{Name: propertyPrefix + "path", Value: d.Artifacts.ModelPath})
	}

	c := &cdx.Component{
		BOMRef:      "urn:uuid:" + uuid.New().String(),
		Type:        cdx.ComponentTypeMachineLearningModel,
		Name:        name,
		Description: "Binary income classifier (<=50K / >50K) over 13 census attributes",
		ModelCard: &cdx.MLModelCard{
			ModelParameters: &cdx.MLModelParameters{
				Approach:           &cdx.MLModelParametersApproach{Type: cdx.MLModelParametersApproachTypeSupervised},
				Task:               "classification",
				ArchitectureFamily: d.ModelKind,
				ModelArchitecture:  name,
				Inputs:             &inputs,
				Outputs:            &outputs,
			},
		},
		Properties: &props,
	}
	if d.ModelSHA256 != "" {
		c.Hashes = &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: d.ModelSHA256}}
	}
	return c
}

func encodersComponent(d predictor.Description) *cdx.Component {
	name := filepath.Base(d.Artifacts.EncodersPath)
	if d.Artifacts.EncodersPath == "" {
		name = "encoders"
	}

	fields := make([]string, 0, len(d.Vocabulary))
	for f := range d.Vocabulary {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	props := make([]cdx.Property, 0, len(fields))
	for _, f := range fields {
		props = append(props, cdx.Property{
			Name:  propertyPrefix + "vocabulary:" + f,
			Value: strconv.Itoa(d.Vocabulary[f]),
		})
	}

	c := &cdx.Component{
		BOMRef:      "urn:uuid:" + uuid.New().String(),
		Type:        cdx.ComponentTypeData,
		Name:        name,
		Description: "Label encoder vocabularies for the categorical inputs",
		Properties:  &props,
	}
	if d.EncodersSHA256 != "" {
		c.Hashes = &[]cdx.Hash{{Algorithm: cdx.HashAlgoSHA256, Value: d.EncodersSHA256}}
	}
	return c
}

func addTool(bom *cdx.BOM, version string) {
	if version == "" {
		version = Version()
	}
	bom.Metadata.Tools = &cdx.ToolsChoice{
		Components: &[]cdx.Component{{
			Type:         cdx.ComponentTypeApplication,
			Manufacturer: &cdx.OrganizationalEntity{Name: ToolVendor},
			Name:         ToolName,
			Version:      version,
		}},
	}
}

// addDependencies makes the model depend on every data component.
func addDependencies(bom *cdx.BOM) {
	modelRef := bom.Metadata.Component.BOMRef
	var dataRefs []string
	if bom.Components != nil {
		for _, c := range *bom.Components {
			if c.Type == cdx.ComponentTypeData && c.BOMRef != "" {
				dataRefs = append(dataRefs, c.BOMRef)
			}
		}
	}
	deps := make([]cdx.Dependency, 0, 1+len(dataRefs))
	model := cdx.Dependency{Ref: modelRef}
	if len(dataRefs) > 0 {
		refs := append([]string(nil), dataRefs...)
		model.Dependencies = &refs
	}
	deps = append(deps, model)
	for _, ref := range dataRefs {
		deps = append(deps, cdx.Dependency{Ref: ref})
	}
	bom.Dependencies = &deps
}
