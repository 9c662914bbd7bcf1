// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Club represents a club record in our system.
//
// The json:"..." tags match the column names of the club table, so
// memberCount keeps its camel-case spelling on the wire.
type Club struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int64  `json:"memberCount"`
	Image       string `json:"image"`
}

// NewClub is the payload accepted by POST /clubs.
//
// Every field is a pointer so a missing key can be told apart from a
// zero value. Name only has to be present: "required" on a pointer
// checks for nil, so "name": "" passes while a missing name fails.
type NewClub struct {
	Name        *string `json:"name"        validate:"required"`
	Description *string `json:"description"`
	MemberCount *int64  `json:"memberCount"`
	Image       *string `json:"image"`
}

// WithDefaults converts the payload into a Club, filling in
// description="", memberCount=0 and image="" for absent fields.
// The ID is left zero; the store assigns it on insert.
func (n NewClub) WithDefaults() Club {
	var club Club
	if n.Name != nil {
		club.Name = *n.Name
	}
	if n.Description != nil {
		club.Description = *n.Description
	}
	if n.MemberCount != nil {
		club.MemberCount = *n.MemberCount
	}
	if n.Image != nil {
		club.Image = *n.Image
	}
	return club
}
