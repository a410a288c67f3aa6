package appErrors

import (
	"errors"
	"fmt"
)

// ErrInvalidDateRange rejects date searches where the window is inverted.
var ErrInvalidDateRange = errors.New("start date must be before end date")

// ErrInvalidCredentials covers both unknown users and wrong passwords so the
// login response does not leak which one it was.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// ErrCampaignNotFound is returned when no campaign matches the requested name.
type ErrCampaignNotFound struct {
	Name string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign %q not found", e.Name)
}

func NewCampaignNotFound(name string) error {
	return &ErrCampaignNotFound{Name: name}
}

// IsNotFound reports whether err is a campaign not-found error.
func IsNotFound(err error) bool {
	var nf *ErrCampaignNotFound
	return errors.As(err, &nf)
}

// ErrCampaignExists is returned when a create request reuses a campaign name.
type ErrCampaignExists struct {
	Name string
}

func (e *ErrCampaignExists) Error() string {
	return fmt.Sprintf("campaign %q already exists", e.Name)
}

func NewCampaignExists(name string) error {
	return &ErrCampaignExists{Name: name}
}

// IsConflict reports whether err is a duplicate-name conflict.
func IsConflict(err error) bool {
	var c *ErrCampaignExists
	return errors.As(err, &c)
}
