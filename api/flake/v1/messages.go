package flakev1

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rzbill/flake/pkg/id"
)

// ErrMalformed is returned when a Struct lacks a field or carries the wrong
// kind of value.
var ErrMalformed = errors.New("flakev1: malformed message")

// RegisterRequest is the payload of UserService/Register.
type RegisterRequest struct {
	Username string
	Password string
	Fullname string
	Age      int32
	Address  string
}

func (r RegisterRequest) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"username": structpb.NewStringValue(r.Username),
		"password": structpb.NewStringValue(r.Password),
		"fullname": structpb.NewStringValue(r.Fullname),
		"age":      structpb.NewNumberValue(float64(r.Age)),
		"address":  structpb.NewStringValue(r.Address),
	}}
}

// RegisterRequestFromStruct reads a RegisterRequest. Missing optional fields
// (fullname, age, address) default to zero values.
func RegisterRequestFromStruct(s *structpb.Struct) (RegisterRequest, error) {
	var (
		r   RegisterRequest
		err error
	)
	if r.Username, err = stringField(s, "username", true); err != nil {
		return r, err
	}
	if r.Password, err = stringField(s, "password", true); err != nil {
		return r, err
	}
	if r.Fullname, err = stringField(s, "fullname", false); err != nil {
		return r, err
	}
	if r.Address, err = stringField(s, "address", false); err != nil {
		return r, err
	}
	age, err := intField(s, "age", math.MinInt32, math.MaxInt32)
	if err != nil {
		return r, err
	}
	r.Age = int32(age)
	return r, nil
}

// RegisterResponse is the result of UserService/Register.
type RegisterResponse struct {
	UserID  id.ID
	Message string
}

func (r RegisterResponse) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"userId":  structpb.NewStringValue(r.UserID.String()),
		"message": structpb.NewStringValue(r.Message),
	}}
}

func RegisterResponseFromStruct(s *structpb.Struct) (RegisterResponse, error) {
	var r RegisterResponse
	raw, err := stringField(s, "userId", true)
	if err != nil {
		return r, err
	}
	if r.UserID, err = id.ParseID(raw); err != nil {
		return r, fmt.Errorf("%w: userId: %v", ErrMalformed, err)
	}
	r.Message, err = stringField(s, "message", false)
	return r, err
}

// Credentials is the payload of UserService/Authenticate.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"username": structpb.NewStringValue(c.Username),
		"password": structpb.NewStringValue(c.Password),
	}}
}

func CredentialsFromStruct(s *structpb.Struct) (Credentials, error) {
	var (
		c   Credentials
		err error
	)
	if c.Username, err = stringField(s, "username", true); err != nil {
		return c, err
	}
	c.Password, err = stringField(s, "password", true)
	return c, err
}

// UserProfile is the result of UserService/GetUser.
type UserProfile struct {
	UserID    id.ID
	Username  string
	Fullname  string
	Age       int32
	Address   string
	CreatedAt time.Time
}

func (p UserProfile) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"userId":    structpb.NewStringValue(p.UserID.String()),
		"username":  structpb.NewStringValue(p.Username),
		"fullname":  structpb.NewStringValue(p.Fullname),
		"age":       structpb.NewNumberValue(float64(p.Age)),
		"address":   structpb.NewStringValue(p.Address),
		"createdAt": structpb.NewStringValue(p.CreatedAt.UTC().Format(time.RFC3339Nano)),
	}}
}

func UserProfileFromStruct(s *structpb.Struct) (UserProfile, error) {
	var p UserProfile
	raw, err := stringField(s, "userId", true)
	if err != nil {
		return p, err
	}
	if p.UserID, err = id.ParseID(raw); err != nil {
		return p, fmt.Errorf("%w: userId: %v", ErrMalformed, err)
	}
	if p.Username, err = stringField(s, "username", true); err != nil {
		return p, err
	}
	if p.Fullname, err = stringField(s, "fullname", false); err != nil {
		return p, err
	}
	if p.Address, err = stringField(s, "address", false); err != nil {
		return p, err
	}
	age, err := intField(s, "age", math.MinInt32, math.MaxInt32)
	if err != nil {
		return p, err
	}
	p.Age = int32(age)
	created, err := stringField(s, "createdAt", false)
	if err != nil {
		return p, err
	}
	if created != "" {
		if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return p, fmt.Errorf("%w: createdAt: %v", ErrMalformed, err)
		}
	}
	return p, nil
}

// IDParts is the result of IDService/Decompose.
type IDParts struct {
	ID           id.ID
	Timestamp    uint64
	DatacenterID int64
	MachineID    int64
	Sequence     uint64
	Time         time.Time
}

func (p IDParts) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":           structpb.NewStringValue(p.ID.String()),
		"timestamp":    structpb.NewNumberValue(float64(p.Timestamp)),
		"datacenterId": structpb.NewNumberValue(float64(p.DatacenterID)),
		"machineId":    structpb.NewNumberValue(float64(p.MachineID)),
		"sequence":     structpb.NewNumberValue(float64(p.Sequence)),
		"time":         structpb.NewStringValue(p.Time.UTC().Format(time.RFC3339Nano)),
	}}
}

// IDPartsFromStruct reads IDParts. Every numeric field of an ID is narrower
// than 53 bits under any layout the server accepts for decoding, so doubles
// carry them exactly.
func IDPartsFromStruct(s *structpb.Struct) (IDParts, error) {
	var p IDParts
	raw, err := stringField(s, "id", true)
	if err != nil {
		return p, err
	}
	if p.ID, err = id.ParseID(raw); err != nil {
		return p, fmt.Errorf("%w: id: %v", ErrMalformed, err)
	}
	ts, err := intField(s, "timestamp", 0, 1<<53)
	if err != nil {
		return p, err
	}
	dc, err := intField(s, "datacenterId", 0, 1<<53)
	if err != nil {
		return p, err
	}
	m, err := intField(s, "machineId", 0, 1<<53)
	if err != nil {
		return p, err
	}
	seq, err := intField(s, "sequence", 0, 1<<53)
	if err != nil {
		return p, err
	}
	p.Timestamp, p.DatacenterID, p.MachineID, p.Sequence = uint64(ts), dc, m, uint64(seq)
	tm, err := stringField(s, "time", false)
	if err != nil {
		return p, err
	}
	if tm != "" {
		if p.Time, err = time.Parse(time.RFC3339Nano, tm); err != nil {
			return p, fmt.Errorf("%w: time: %v", ErrMalformed, err)
		}
	}
	return p, nil
}

// IDListToValue encodes ids as a list of decimal strings.
func IDListToValue(ids []id.ID) *structpb.ListValue {
	values := make([]*structpb.Value, len(ids))
	for i, v := range ids {
		values[i] = structpb.NewStringValue(v.String())
	}
	return &structpb.ListValue{Values: values}
}

// IDListFromValue decodes a list produced by IDListToValue.
func IDListFromValue(l *structpb.ListValue) ([]id.ID, error) {
	out := make([]id.ID, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a string", ErrMalformed, i)
		}
		parsed, err := id.ParseID(sv.StringValue)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

func stringField(s *structpb.Struct, key string, required bool) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%w: missing %q", ErrMalformed, key)
		}
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", ErrMalformed, key)
	}
	return sv.StringValue, nil
}

// intField reads an optional whole number in [lo, hi]; absent means 0.
func intField(s *structpb.Struct, key string, lo, hi int64) (int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be a number", ErrMalformed, key)
	}
	f := nv.NumberValue
	if f != math.Trunc(f) || f < float64(lo) || f > float64(hi) {
		return 0, fmt.Errorf("%w: %q must be a whole number in [%d, %d]", ErrMalformed, key, lo, hi)
	}
	return int64(f), nil
}
