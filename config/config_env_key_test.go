package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"firebase": map[string]any{
			"apiKey":            "",
			"messagingSenderId": "",
		},
		"credentialCache": map[string]any{
			"keyPrefix": "storefront:session:",
		},
		"secretKey": map[string]any{
			"session": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FIREBASE_APIKEY", want: "firebase.apiKey"},
		{envKey: "FIREBASE_MESSAGINGSENDERID", want: "firebase.messagingSenderId"},
		{envKey: "CREDENTIALCACHE_KEYPREFIX", want: "credentialCache.keyPrefix"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestValidate_ReportsEveryMissingFirebaseKey(t *testing.T) {
	cfg := &Config{Firebase: &FirebaseConfig{APIKey: "key", ProjectID: "demo"}}
	cfg.SecretKey.Session = "secret"

	err := cfg.Validate()
	require.Error(t, err)

	for _, key := range []string{
		"firebase.authDomain",
		"firebase.storageBucket",
		"firebase.messagingSenderId",
		"firebase.appId",
	} {
		assert.Contains(t, err.Error(), key)
	}
	assert.NotContains(t, err.Error(), "firebase.apiKey")
	assert.NotContains(t, err.Error(), "firebase.projectId")
}

func TestValidate_MissingFirebaseSection(t *testing.T) {
	cfg := &Config{}
	cfg.SecretKey.Session = "secret"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firebase.apiKey")
	assert.Contains(t, err.Error(), "firebase.appId")
}

func TestValidate_RequiresSessionSecret(t *testing.T) {
	cfg := &Config{Firebase: completeFirebase()}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secretKey.session")
}

func TestValidate_Complete(t *testing.T) {
	cfg := &Config{Firebase: completeFirebase()}
	cfg.SecretKey.Session = "secret"

	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "7MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, ProviderFirestore, cfg.DocumentStore.Provider)
	assert.Equal(t, ProviderFirebase, cfg.ObjectStore.Provider)
	assert.Equal(t, ProviderMemory, cfg.CredentialCache.Provider)
	assert.Equal(t, defaultRefreshThreshold, cfg.Session.RefreshThreshold)
	assert.Equal(t, defaultIdleTimeout, cfg.Session.IdleTimeout)
	assert.Equal(t, defaultRefreshMargin, cfg.Gateway.RefreshMargin)
	assert.EqualValues(t, 5*1024*1024, cfg.Upload.MaxSizeBytes)
	assert.Equal(t, defaultUploadTimeout, cfg.Upload.Timeout)
	assert.ElementsMatch(t, []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, "wa.me", cfg.Storefront.MessagingHost)
	assert.Equal(t, "55", cfg.Storefront.CountryCode)
	assert.Equal(t, 5, cfg.Storefront.LowStockThreshold)
}

func completeFirebase() *FirebaseConfig {
	return &FirebaseConfig{
		APIKey:            "key",
		AuthDomain:        "demo.firebaseapp.com",
		ProjectID:         "demo",
		StorageBucket:     "demo.appspot.com",
		MessagingSenderID: "123",
		AppID:             "1:123:web:abc",
	}
}
