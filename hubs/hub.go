package hubs

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type AidType string

const (
	AidFood     AidType = "Food"
	AidWater    AidType = "Water"
	AidMedical  AidType = "Medical"
	AidShelter  AidType = "Shelter"
	AidClothing AidType = "Clothing"
)

// AidTypeVocabulary lists every accepted aid type in display order.
var AidTypeVocabulary = []AidType{AidFood, AidWater, AidMedical, AidShelter, AidClothing}

// ParseAidType matches s against the vocabulary, ignoring case and surrounding space.
func ParseAidType(s string) (AidType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AidTypeVocabulary {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) IsFinite() bool {
	return isFinite(c.Lat) && isFinite(c.Lng)
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

type ReliefHub struct {
	ID           string    `json:"id"`
	HubName      string    `json:"hubName" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	Latitude     NullFloat `json:"latitude"`
	Longitude    NullFloat `json:"longitude"`
	AreasCovered AreaList  `json:"areasCovered"`
	AidTypes     AidTypes  `json:"aidTypes"`
}

// Coordinate reports the hub position when both axes are present and finite.
func (h ReliefHub) Coordinate() (Coordinate, bool) {
	if !h.Latitude.Valid || !h.Longitude.Valid {
		return Coordinate{}, false
	}
	c := Coordinate{Lat: h.Latitude.Float64, Lng: h.Longitude.Float64}
	if !c.IsFinite() {
		return Coordinate{}, false
	}
	return c, true
}

// WithCoordinate returns a copy of h positioned at c. Both axes are always set together.
func (h ReliefHub) WithCoordinate(c Coordinate) ReliefHub {
	h.Latitude = NullFloat{Float64: c.Lat, Valid: true}
	h.Longitude = NullFloat{Float64: c.Lng, Valid: true}
	return h
}

func (h ReliefHub) HasAidType(t AidType) bool {
	for _, v := range h.AidTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Response struct {
	Count   int         `json:"count"`
	Results []ReliefHub `json:"results"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NullFloat is a nullable coordinate axis. Non-numeric or non-finite input decodes as absent.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: isFinite(v)}
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid || !isFinite(n.Float64) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Float64, 'f', -1, 64)), nil
}

func (n *NullFloat) UnmarshalJSON(b []byte) error {
	*n = NullFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := jsoniter.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*n = Float(v)
	return nil
}

func (n NullFloat) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

func (n *NullFloat) Scan(value interface{}) error {
	*n = NullFloat{}
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		*n = Float(v)
	case float32:
		*n = Float(float64(v))
	case int64:
		*n = Float(float64(v))
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*n = Float(f)
		}
	case []byte:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			*n = Float(f)
		}
	default:
		return fmt.Errorf("NullFloat::Scan unsupported type %T", value)
	}
	return nil
}

// AreaList decodes from a JSON array or from a comma separated string.
type AreaList []string

// ParseAreas splits comma separated free text into trimmed, non-empty areas.
func ParseAreas(s string) AreaList {
	areas := AreaList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			areas = append(areas, part)
		}
	}
	return areas
}

func (a *AreaList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*a = AreaList{}
		return nil
	case b[0] == '"':
		var s string
		if err := jsoniter.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ParseAreas(s)
		return nil
	}
	var list []string
	if err := jsoniter.Unmarshal(b, &list); err != nil {
		return err
	}
	*a = list
	return nil
}

func (a AreaList) Value() (driver.Value, error) {
	if a == nil {
		a = AreaList{}
	}
	return jsoniter.Marshal([]string(a))
}

func (a *AreaList) Scan(value interface{}) error {
	b, err := scanBytes("AreaList", value)
	if err != nil || b == nil {
		*a = AreaList{}
		return err
	}
	return jsoniter.Unmarshal(b, (*[]string)(a))
}

type AidTypes []AidType

// UnmarshalJSON keeps only vocabulary members and normalises their spelling.
func (t *AidTypes) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := jsoniter.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := AidTypes{}
	for _, s := range raw {
		if v, ok := ParseAidType(s); ok && !out.contains(v) {
			out = append(out, v)
		}
	}
	*t = out
	return nil
}

func (t AidTypes) contains(v AidType) bool {
	for _, x := range t {
		if x == v {
			return true
		}
	}
	return false
}

func (t AidTypes) Value() (driver.Value, error) {
	if t == nil {
		t = AidTypes{}
	}
	return jsoniter.Marshal([]AidType(t))
}

func (t *AidTypes) Scan(value interface{}) error {
	b, err := scanBytes("AidTypes", value)
	if err != nil || b == nil {
		*t = AidTypes{}
		return err
	}
	return t.UnmarshalJSON(b)
}

func scanBytes(name string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.New(name + "::Scan type assertion to []byte failed")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
