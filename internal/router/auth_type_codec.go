package router

import (
	"encoding/json"
	"fmt"
)

// authTypeEnvelope is the externally-tagged JSON shape ConnectorAuthType
// round-trips through MerchantAccount.ConnectorAuthType (stored as jsonb):
// exactly one of the four fields is present, named after the concrete
// type it carries.
type authTypeEnvelope struct {
	HeaderKey    *HeaderKey    `json:"HeaderKey,omitempty"`
	BodyKey      *BodyKey      `json:"BodyKey,omitempty"`
	SignatureKey *SignatureKey `json:"SignatureKey,omitempty"`
	NoKey        *NoKey        `json:"NoKey,omitempty"`
}

// MarshalConnectorAuthType serialises a ConnectorAuthType for storage on
// MerchantAccount.ConnectorAuthType.
func MarshalConnectorAuthType(auth ConnectorAuthType) ([]byte, error) {
	var env authTypeEnvelope
	switch a := auth.(type) {
	case HeaderKey:
		env.HeaderKey = &a
	case BodyKey:
		env.BodyKey = &a
	case SignatureKey:
		env.SignatureKey = &a
	case NoKey:
		env.NoKey = &a
	default:
		return nil, fmt.Errorf("router: unknown ConnectorAuthType %T", auth)
	}
	return json.Marshal(env)
}

// UnmarshalConnectorAuthType parses the stored jsonb shape back into a
// concrete ConnectorAuthType.
func UnmarshalConnectorAuthType(data []byte) (ConnectorAuthType, error) {
	var env authTypeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("router: malformed connector auth type: %w", err)
	}
	switch {
	case env.HeaderKey != nil:
		return *env.HeaderKey, nil
	case env.BodyKey != nil:
		return *env.BodyKey, nil
	case env.SignatureKey != nil:
		return *env.SignatureKey, nil
	case env.NoKey != nil:
		return *env.NoKey, nil
	default:
		return nil, fmt.Errorf("router: connector auth type envelope carries no variant")
	}
}
