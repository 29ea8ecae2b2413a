package locations

import (
	"context"
	"fmt"
	"path"
	"strings"

	"seq-metadata/core/lims"
	"seq-metadata/core/obstore"
)

const (
	// PlatformIllumina is the seq_platform_name recorded for every product.
	PlatformIllumina = "illumina"
	// PipelineNPGProd is the default pipeline_name, overridden when a data
	// object carries alt_process metadata.
	PipelineNPGProd = "npg-prod"
)

// Product is one row of the bulk export loaded into the warehouse's product
// locations table.
type Product struct {
	SeqPlatformName       string `json:"seq_platform_name"`
	PipelineName          string `json:"pipeline_name"`
	IrodsRootCollection   string `json:"irods_root_collection"`
	IrodsDataRelativePath string `json:"irods_data_relative_path"`
	IDProduct             string `json:"id_product"`
}

// makeProduct gathers the information about a data object required to load
// it into the product locations table.
//
// Objects outside the target extension, under a *ranger analysis directory,
// or in an excluded metadata class (tag index 0, PhiX reference, read
// subset) fail with ErrExcludedObject. Objects lacking id_product metadata
// fail with ErrMissingMetadata.
func makeProduct(ctx context.Context, client obstore.Client, objPath, ext string) (*Product, error) {
	name := path.Base(objPath)
	if !strings.HasSuffix(name, "."+ext) || strings.Contains(objPath, "ranger") {
		return nil, fmt.Errorf("%w: %s is in an excluded class", ErrExcludedObject, objPath)
	}

	avus, err := client.Metadata(ctx, objPath)
	if err != nil {
		return nil, err
	}

	product := &Product{
		SeqPlatformName:       PlatformIllumina,
		PipelineName:          PipelineNPGProd,
		IrodsRootCollection:   path.Dir(objPath),
		IrodsDataRelativePath: name,
	}

	for _, avu := range avus {
		switch {
		case avu.Attr == lims.TagIndexAttr && avu.Value == "0",
			avu.Attr == lims.ReferenceAttr && strings.Contains(avu.Value, "PhiX"),
			// A subset is not tagged alone, but appears as part of the
			// component metadata.
			avu.Attr == lims.ComponentAttr && strings.Contains(avu.Value, lims.SubsetAttr):
			return nil, fmt.Errorf("%w: %s is in an excluded object class", ErrExcludedObject, objPath)
		}

		switch avu.Attr {
		case lims.IDProductAttr:
			product.IDProduct = avu.Value
		case lims.AltProcessAttr:
			product.PipelineName = "alt_" + avu.Value
		}
	}

	if product.IDProduct == "" {
		return nil, fmt.Errorf("%w: id_product metadata not found for %s", ErrMissingMetadata, objPath)
	}

	return product, nil
}
