package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"tableStore": map[string]any{
			"baseUrl": "http://localhost:3111",
			"apiKey":  "",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "TABLESTORE_BASEURL", want: "tableStore.baseUrl"},
		{envKey: "TABLESTORE_APIKEY", want: "tableStore.apiKey"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
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

func TestConfigIsAdmin(t *testing.T) {
	cfg := &Config{Admins: []string{"user-a", "user-b"}}

	if !cfg.IsAdmin("user-a") {
		t.Fatal("expected user-a to be admin")
	}
	if cfg.IsAdmin("user-c") {
		t.Fatal("did not expect user-c to be admin")
	}
}
