package service

import (
	"context"
	"strings"

	"github.com/iliyamo/venue-simulator/internal/model"
)

// Registrar validates and registers customers.
type Registrar struct {
	deps Deps
}

func NewRegistrar(d Deps) *Registrar {
	return &Registrar{deps: d.withDefaults()}
}

// Register adds a customer. Invalid fields return a *model.ValidationError;
// an identifier already on file returns repository.ErrConflict.
func (r *Registrar) Register(ctx context.Context, name, id string, age int) (*model.Customer, error) {
	c := &model.Customer{Name: strings.TrimSpace(name), ID: strings.TrimSpace(id), Age: age}
	if err := model.Validate(c); err != nil {
		return nil, err
	}
	if err := r.deps.Registry.AddCustomer(c); err != nil {
		return nil, err
	}
	r.deps.Log.Info(r.deps.Log.WithCustomer(ctx, c.ID), "customer registered")
	return c, nil
}
