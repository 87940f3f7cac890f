package aws_handler_test

import (
	"errors"
	"testing"

	aws_handler "financialamigo/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	secrets map[string]string
}

func (f *fakeSecretsManager) GetSecretValue(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := f.secrets[aws.StringValue(input.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestSecretManager(t *testing.T) {
	svc := &fakeSecretsManager{secrets: map[string]string{
		"amigo/prod": `{"JWT_SECRET_KEY":"s3cret","GOOGLE_CLIENT_ID":"client"}`,
		"amigo/bad":  `not json`,
	}}
	sm := aws_handler.NewSecretManager(svc)

	t.Run("parses key value secrets", func(t *testing.T) {
		values, err := sm.GetSecretValues("amigo/prod")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", values["JWT_SECRET_KEY"])
		assert.Equal(t, "client", values["GOOGLE_CLIENT_ID"])
	})

	t.Run("rejects non JSON secrets", func(t *testing.T) {
		_, err := sm.GetSecretValues("amigo/bad")
		assert.Error(t, err)
	})

	t.Run("propagates lookup errors", func(t *testing.T) {
		_, err := sm.GetSecretValue("missing")
		assert.Error(t, err)
	})
}
