package console

import (
	"context"
	"errors"

	"github.com/iliyamo/venue-simulator/internal/model"
	"github.com/iliyamo/venue-simulator/internal/repository"
)

// register asks for a customer's details until the registrar accepts them.
// An ID that is already registered returns the existing customer.
func (c *Console) register(ctx context.Context) (*model.Customer, error) {
	for {
		name, err := c.askText("Customer name: ")
		if err != nil {
			return nil, err
		}
		id, err := c.askCustomerID()
		if err != nil {
			return nil, err
		}
		age, err := c.askPositive("Customer age: ")
		if err != nil {
			return nil, err
		}

		cust, err := c.desks.Registrar.Register(ctx, name, id, age)
		switch {
		case err == nil:
			c.println("\nCustomer registered.")
			return cust, nil
		case errors.Is(err, repository.ErrConflict):
			existing, lerr := c.reg.Customer(id)
			if lerr != nil {
				return nil, lerr
			}
			c.println("\nThat ID is already registered.")
			return existing, nil
		case errors.Is(err, model.ErrInvalid):
			c.printf("\n%v\n", err)
		default:
			return nil, err
		}
	}
}

// identify looks a customer up by ID and offers registration on a miss.
// A nil customer with a nil error means the user backed out.
func (c *Console) identify(ctx context.Context) (*model.Customer, error) {
	id, err := c.askCustomerID()
	if err != nil {
		return nil, err
	}
	if cust, err := c.reg.Customer(id); err == nil {
		return cust, nil
	}
	c.println("\nCustomer not registered.\n1. Register customer\n2. Back")
	opt, err := c.choose("Choose an option: ", 2)
	if err != nil || opt == 2 {
		return nil, err
	}
	return c.register(ctx)
}
