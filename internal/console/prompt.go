package console

import (
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const minCustomerIDLen = 6

// ask prints label and reads one trimmed line. io.EOF is returned once
// input runs out.
func (c *Console) ask(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// choose re-prompts until the answer is an option number in [1, n].
func (c *Console) choose(label string, n int) (int, error) {
	for {
		s, err := c.ask(label)
		if err != nil {
			return 0, err
		}
		if opt, ok := parseDigits(s); ok && opt >= 1 && opt <= n {
			return opt, nil
		}
		c.println("Invalid option.")
	}
}

// askPositive re-prompts until the answer is a positive integer.
func (c *Console) askPositive(label string) (int, error) {
	for {
		s, err := c.ask(label)
		if err != nil {
			return 0, err
		}
		if n, ok := parseDigits(s); ok && n > 0 {
			return n, nil
		}
		c.println("Enter a positive whole number.")
	}
}

// askCustomerID re-prompts until the answer looks like an identity
// document number.
func (c *Console) askCustomerID() (string, error) {
	for {
		s, err := c.ask("Customer ID: ")
		if err != nil {
			return "", err
		}
		if allDigits(s) && len(s) >= minCustomerIDLen {
			return s, nil
		}
		c.printf("Enter a numeric ID of at least %d digits.\n", minCustomerIDLen)
	}
}

// askPrice re-prompts until the answer is a non-negative amount.
func (c *Console) askPrice(label string) (decimal.Decimal, error) {
	for {
		s, err := c.ask(label)
		if err != nil {
			return decimal.Zero, err
		}
		d, perr := decimal.NewFromString(s)
		if perr == nil && !d.IsNegative() {
			return d, nil
		}
		c.println("Enter a valid amount.")
	}
}

// askText re-prompts until the answer is not blank.
func (c *Console) askText(label string) (string, error) {
	for {
		s, err := c.ask(label)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		c.println("This field cannot be empty.")
	}
}

// parseDigits accepts ASCII digits only, so "+3" and "-1" are rejected.
func parseDigits(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
