/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Identity is an opaque principal naming a caller or an owner.
type Identity string

// Gender is the two-valued attribute derived from an entity's DNA.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// DeriveGender returns Female when dna has an odd byte length and Male otherwise.
func DeriveGender(dna []byte) Gender {
	if len(dna)%2 != 0 {
		return Female
	}
	return Male
}

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return fmt.Sprintf("Gender(%d)", uint8(g))
	}
}

// ParseGender is the inverse of Gender.String.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "Male":
		return Male, nil
	case "Female":
		return Female, nil
	}
	return Male, fmt.Errorf("unknown gender %q", s)
}

func (g Gender) MarshalText() ([]byte, error) {
	if g > Female {
		return nil, fmt.Errorf("invalid gender value %d", uint8(g))
	}
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalDynamoDBAttributeValue stores the gender as its string name.
func (g Gender) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	text, err := g.MarshalText()
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberS{Value: string(text)}, nil
}

// UnmarshalDynamoDBAttributeValue accepts the string form written by MarshalDynamoDBAttributeValue.
func (g *Gender) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("gender: expected string attribute, got %T", av)
	}
	return g.UnmarshalText([]byte(s.Value))
}

// Entity is a minted, owned record. Owner is the only field that changes after creation.
type Entity struct {
	// Unique, monotonically increasing identifier. Never reused.
	ID uint32 `json:"id" dynamodbav:"ID"`

	// Raw DNA bytes supplied at mint time.
	DNA []byte `json:"dna" dynamodbav:"DNA"`

	Price uint32 `json:"price" dynamodbav:"Price"`

	// Derived from DNA at mint time, see DeriveGender.
	Gender Gender `json:"gender" dynamodbav:"Gender"`

	// Current owner.
	Owner Identity `json:"owner" dynamodbav:"Owner"`
}

// Clone returns a copy of e that shares no memory with it.
func (e Entity) Clone() Entity {
	cp := e
	if e.DNA != nil {
		cp.DNA = append([]byte{}, e.DNA...)
	}
	return cp
}

// Equal reports whether e and other hold the same content. A nil and an empty DNA compare equal.
func (e Entity) Equal(other Entity) bool {
	return e.ID == other.ID &&
		bytes.Equal(e.DNA, other.DNA) &&
		e.Price == other.Price &&
		e.Gender == other.Gender &&
		e.Owner == other.Owner
}
