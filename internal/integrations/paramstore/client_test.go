package paramstore

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeSSM serves parameter values by name and records what was asked for.
type fakeSSM struct {
	values map[string]string
	err    error

	requested []string
	decrypted []bool
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.requested = append(f.requested, *in.Name)
	f.decrypted = append(f.decrypted, in.WithDecryption != nil && *in.WithDecryption)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[*in.Name]
	if !ok {
		return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name}}, nil
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: &v}}, nil
}

func newStore(t *testing.T, api *fakeSSM) *Client {
	t.Helper()
	c, err := New(api, "/chat-widget/")
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New(nil, "/chat-widget")
	require.ErrorContains(t, err, "ssm api must not be nil")

	_, err = New(&fakeSSM{}, " / ")
	require.ErrorContains(t, err, "prefix must not be empty")

	c, err := New(&fakeSSM{}, " /chat-widget// ")
	require.NoError(t, err)
	require.Equal(t, "/chat-widget", c.Prefix())
	require.Equal(t, "/chat-widget/api-token", c.TokenParameter())
}

func TestBaseURL(t *testing.T) {
	api := &fakeSSM{values: map[string]string{"/chat-widget/base-url": " https://support.example.com/ \n"}}
	v, err := newStore(t, api).BaseURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://support.example.com", v)
	require.Equal(t, []string{"/chat-widget/base-url"}, api.requested)
	require.Equal(t, []bool{true}, api.decrypted)
}

func TestBaseURL_Errors(t *testing.T) {
	cases := []struct {
		name string
		api  *fakeSSM
		want string
	}{
		{name: "api error", api: &fakeSSM{err: errors.New("throttled")}, want: "throttled"},
		{name: "no value", api: &fakeSSM{}, want: "has no value"},
		{name: "blank", api: &fakeSSM{values: map[string]string{"/chat-widget/base-url": "  "}}, want: "is blank"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newStore(t, tc.api).BaseURL(context.Background())
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestGetParameter_TokenValue(t *testing.T) {
	api := &fakeSSM{values: map[string]string{"/chat-widget/api-token": `{"token":"t"}`}}
	c := newStore(t, api)
	v, err := c.GetParameter(context.Background(), c.TokenParameter())
	require.NoError(t, err)
	require.Equal(t, `{"token":"t"}`, v)
}

func TestGetParameter_Errors(t *testing.T) {
	_, err := (&Client{}).GetParameter(context.Background(), "/p")
	require.ErrorContains(t, err, "not initialized")

	_, err = newStore(t, &fakeSSM{}).GetParameter(context.Background(), "  ")
	require.ErrorContains(t, err, "name is required")
}
