//go:build wireinject
// +build wireinject

package provider

import (
	"github.com/google/wire"
)

func NewProvider() (*Provider, error) {
	wire.Build(
		wire.Struct(new(Provider), "*"),
		AllProvider,
	)
	return nil, nil
}
