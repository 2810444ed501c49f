package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid minimal",
			cfg:  Config{Template: "image.pkr.hcl", InstallerObject: "install.sh"},
		},
		{
			name:    "empty template",
			cfg:     Config{InstallerObject: "install.sh"},
			wantErr: "template",
		},
		{
			name:    "empty installer object",
			cfg:     Config{Template: "image.pkr.hcl"},
			wantErr: "installer_object",
		},
		{
			name: "s3 credentials must come in pairs",
			cfg: Config{
				Template:        "image.pkr.hcl",
				InstallerObject: "install.sh",
				S3:              &S3{SecretKey: "SK"},
			},
			wantErr: "set together",
		},
		{
			name: "s3 credential chain without static keys",
			cfg: Config{
				Template:        "image.pkr.hcl",
				InstallerObject: "install.sh",
				S3:              &S3{UseSDK: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReleasePath(t *testing.T) {
	assert.NoError(t, validateReleasePath("gs://releases/v1"))
	assert.NoError(t, validateReleasePath("s3://releases/v1"))
	assert.ErrorIs(t, validateReleasePath(""), errReleasePathRequired)
	assert.ErrorIs(t, validateReleasePath("ftp://releases/v1"), errReleasePathScheme)
}
