package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMAPI is the subset of the SSM client used as a parameter store
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
}

// ParameterStore keeps the cleanup cycle state in SSM Parameter Store
type ParameterStore struct {
	client SSMAPI
}

// NewParameterStore creates a ParameterStore from a loaded AWS config
func NewParameterStore(cfg aws.Config) *ParameterStore {
	return NewParameterStoreWithAPI(ssm.NewFromConfig(cfg))
}

// NewParameterStoreWithAPI creates a ParameterStore over any SSMAPI implementation
func NewParameterStoreWithAPI(api SSMAPI) *ParameterStore {
	return &ParameterStore{client: api}
}

// Get returns the value of a parameter, decrypting SecureStrings.
// A missing parameter is reported with found=false and no error.
func (p *ParameterStore) Get(ctx context.Context, name string) (string, bool, error) {
	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error getting parameter %s: %w", name, err)
	}
	if out.Parameter == nil {
		return "", false, nil
	}
	return aws.ToString(out.Parameter.Value), true, nil
}

// Put writes a String parameter, overwriting any previous value
func (p *ParameterStore) Put(ctx context.Context, name, value, description string) error {
	_, err := p.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:        aws.String(name),
		Value:       aws.String(value),
		Description: aws.String(description),
		Type:        types.ParameterTypeString,
		Overwrite:   aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("error putting parameter %s: %w", name, err)
	}
	return nil
}

// Delete removes a parameter. Deleting a missing parameter is not an error.
func (p *ParameterStore) Delete(ctx context.Context, name string) error {
	_, err := p.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error deleting parameter %s: %w", name, err)
	}
	return nil
}

// GetSecret returns a required SecureString value
func (p *ParameterStore) GetSecret(ctx context.Context, name string) (string, error) {
	value, found, err := p.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if !found || value == "" {
		return "", fmt.Errorf("secret parameter %s not found", name)
	}
	return value, nil
}
