package model

import "fmt"

// Customer is a registered buyer of tickets and concessions. ID is the
// national identity number and is unique across the registry; it also
// drives both discount predicates.
//
// Fields:
//  Name – letters only, at least two characters.
//  ID   – decimal digits only, at least six characters.
//  Age  – whole years, 1 to 119.
type Customer struct {
	Name string `json:"name" validate:"required,alphaunicode,min=2"`
	ID   string `json:"id" validate:"required,number,min=6"`
	Age  int    `json:"age" validate:"gte=1,lte=119"`
}

// Describe renders the customer for menus.
func (c *Customer) Describe() string {
	return fmt.Sprintf("-Name: %s\n-ID: %s\n-Age: %d\n", c.Name, c.ID, c.Age)
}

// CustomerRecord is the persisted form of a customer. It carries the same
// validation rules so a tampered snapshot is rejected on restore.
type CustomerRecord struct {
	Name string `json:"name" validate:"required,alphaunicode,min=2"`
	ID   string `json:"id" validate:"required,number,min=6"`
	Age  int    `json:"age" validate:"gte=1,lte=119"`
}

func (c *Customer) ToRecord() CustomerRecord {
	return CustomerRecord{Name: c.Name, ID: c.ID, Age: c.Age}
}

func CustomerFromRecord(r CustomerRecord) *Customer {
	return &Customer{Name: r.Name, ID: r.ID, Age: r.Age}
}
