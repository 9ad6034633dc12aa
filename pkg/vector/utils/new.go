// Package vectorutils is the vector driver utility package
package vectorutils

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/vector"
	"github.com/primefold/ragd/pkg/vector/chroma"
	"github.com/primefold/ragd/pkg/vector/memory"
	"github.com/primefold/ragd/pkg/vector/qdrant"
)

type NewDriverOpts struct {
	ProviderType string
	TargetURL    string
	Collection   string
	Dimensions   uint64
	Logger       *zap.Logger
}

func NewDriver(o *NewDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "memory":
		return memory.NewDriver(), nil
	case "chroma":
		return chroma.NewDriver(chroma.Config{
			URL:            o.TargetURL,
			CollectionName: o.Collection,
		}, o.Logger)
	case "qdrant":
		return qdrant.NewDriver(qdrant.Config{
			Target:         o.TargetURL,
			CollectionName: o.Collection,
			Dimensions:     o.Dimensions,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
