package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Parameter names under the widget prefix.
const (
	baseURLName  = "base-url"
	apiTokenName = "api-token"
)

type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client reads the chat widget's settings from SSM. All names are relative
// to one prefix, e.g. /chat-widget/base-url.
type Client struct {
	api    ssmAPI
	prefix string
}

// New returns a Client reading parameters below prefix.
func New(api ssmAPI, prefix string) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: ssm api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: prefix must not be empty")
	}
	return &Client{api: api, prefix: prefix}, nil
}

// Prefix is the normalized parameter prefix, without a trailing slash.
func (c *Client) Prefix() string { return c.prefix }

// TokenParameter is the full name of the parameter holding the bearer token
// as {"token":"..."}.
func (c *Client) TokenParameter() string {
	return c.name(apiTokenName)
}

// BaseURL reads the endpoint base URL. A blank value is an error.
func (c *Client) BaseURL(ctx context.Context) (string, error) {
	v, err := c.GetParameter(ctx, c.name(baseURLName))
	if err != nil {
		return "", err
	}
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if v == "" {
		return "", fmt.Errorf("paramstore: %s is blank", c.name(baseURLName))
	}
	return v, nil
}

// GetParameter returns the decrypted value of the named parameter.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c == nil || c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: parameter name is required")
	}

	decrypt := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{Name: &name, WithDecryption: &decrypt})
	if err != nil {
		return "", fmt.Errorf("paramstore: read %s: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("paramstore: %s has no value", name)
	}
	return *out.Parameter.Value, nil
}

func (c *Client) name(leaf string) string {
	return c.prefix + "/" + leaf
}
