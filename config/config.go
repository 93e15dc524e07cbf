package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "7MB"

	defaultRefreshThreshold = 5 * time.Minute
	defaultIdleTimeout      = time.Hour
	defaultSessionTokenTTL  = 24 * time.Hour
	defaultRefreshMargin    = 5 * time.Minute
	defaultUploadTimeout    = 5 * time.Second
	defaultUploadMaxSize    = 5 * 1024 * 1024
	defaultLowStock         = 5
	defaultMessagingHost    = "wa.me"
	defaultCountryCode      = "55"
)

// Provider names shared by the pluggable infrastructure sections.
const (
	ProviderFirestore = "firestore"
	ProviderMemory    = "memory"
	ProviderFirebase  = "firebase"
	ProviderBlob      = "blob"
	ProviderRedis     = "redis"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		// Session signs the service-issued session tokens handed to browser clients
		Session string `json:"session" yaml:"session"`
	} `json:"secretKey" yaml:"secretKey"`

	// Firebase holds the backend connection parameters
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	DocumentStore *DocumentStoreConfig `json:"documentStore" yaml:"documentStore"`

	ObjectStore *ObjectStoreConfig `json:"objectStore" yaml:"objectStore"`

	CredentialCache *CredentialCacheConfig `json:"credentialCache" yaml:"credentialCache"`

	Session *SessionConfig `json:"session" yaml:"session"`

	Gateway *GatewayConfig `json:"gateway" yaml:"gateway"`

	Upload *UploadConfig `json:"upload" yaml:"upload"`

	Storefront *StorefrontConfig `json:"storefront" yaml:"storefront"`

	// QRCode configuration for store link QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for catalog event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines the Firebase project the service connects to
type FirebaseConfig struct {
	APIKey            string `json:"apiKey" yaml:"apiKey"`
	AuthDomain        string `json:"authDomain" yaml:"authDomain"`
	ProjectID         string `json:"projectId" yaml:"projectId"`
	StorageBucket     string `json:"storageBucket" yaml:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId" yaml:"messagingSenderId"`
	AppID             string `json:"appId" yaml:"appId"`

	// CredentialsPath points at a service account key; empty uses application default credentials
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`

	// Endpoint overrides, used against emulators and in tests
	IdentityToolkitEndpoint string `json:"identityToolkitEndpoint" yaml:"identityToolkitEndpoint"`
	SecureTokenEndpoint     string `json:"secureTokenEndpoint" yaml:"secureTokenEndpoint"`
}

// DocumentStoreConfig selects the document store backend
type DocumentStoreConfig struct {
	// Provider: "firestore" or "memory"
	Provider string `json:"provider" yaml:"provider"`
}

// ObjectStoreConfig selects where uploaded images are stored
type ObjectStoreConfig struct {
	// Provider: "firebase" (REST with the merchant's credential) or "blob" (gocloud bucket)
	Provider string `json:"provider" yaml:"provider"`

	// BucketURL is a gocloud URL such as gs://bucket, file:///tmp/uploads or mem://
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicURLFormat renders a fetchable URL from an object key, e.g. https://cdn.example.com/%s
	PublicURLFormat string `json:"publicUrlFormat" yaml:"publicUrlFormat"`

	// StorageEndpoint overrides the Firebase Storage REST base URL
	StorageEndpoint string `json:"storageEndpoint" yaml:"storageEndpoint"`
}

// CredentialCacheConfig defines where session credentials are mirrored across restarts
type CredentialCacheConfig struct {
	// Provider: "redis" or "memory"
	Provider  string `json:"provider" yaml:"provider"`
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// SessionConfig defines the session timers
type SessionConfig struct {
	RefreshThreshold time.Duration `json:"refreshThreshold" yaml:"refreshThreshold"`
	IdleTimeout      time.Duration `json:"idleTimeout" yaml:"idleTimeout"`

	// TokenTTL is the lifetime of the service-issued session token handed to browsers
	TokenTTL time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

// GatewayConfig defines the authenticated request gateway
type GatewayConfig struct {
	RefreshMargin time.Duration `json:"refreshMargin" yaml:"refreshMargin"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
}

// UploadConfig defines image upload limits
type UploadConfig struct {
	MaxSizeBytes int64         `json:"maxSizeBytes" yaml:"maxSizeBytes"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	AllowedTypes []string      `json:"allowedTypes" yaml:"allowedTypes"`
}

// StorefrontConfig defines the public storefront
type StorefrontConfig struct {
	PublicBaseURL     string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	MessagingHost     string `json:"messagingHost" yaml:"messagingHost"`
	CountryCode       string `json:"countryCode" yaml:"countryCode"`
	LowStockThreshold int    `json:"lowStockThreshold" yaml:"lowStockThreshold"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: FIREBASE_APIKEY -> firebase.apiKey (not firebase.apikey)
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every missing Firebase connection parameter at once.
func (c *Config) Validate() error {
	fb := c.Firebase
	if fb == nil {
		fb = &FirebaseConfig{}
	}

	required := map[string]string{
		"firebase.apiKey":            fb.APIKey,
		"firebase.authDomain":        fb.AuthDomain,
		"firebase.projectId":         fb.ProjectID,
		"firebase.storageBucket":     fb.StorageBucket,
		"firebase.messagingSenderId": fb.MessagingSenderID,
		"firebase.appId":             fb.AppID,
	}

	var missing []string
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if strings.TrimSpace(c.SecretKey.Session) == "" {
		return errors.New("missing required configuration: secretKey.session")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.DocumentStore == nil {
		c.DocumentStore = &DocumentStoreConfig{Provider: ProviderFirestore}
	}
	if c.ObjectStore == nil {
		c.ObjectStore = &ObjectStoreConfig{Provider: ProviderFirebase}
	}
	if c.CredentialCache == nil {
		c.CredentialCache = &CredentialCacheConfig{Provider: ProviderMemory}
	}
	if c.CredentialCache.KeyPrefix == "" {
		c.CredentialCache.KeyPrefix = "storefront:session:"
	}

	if c.Session == nil {
		c.Session = &SessionConfig{}
	}
	if c.Session.RefreshThreshold <= 0 {
		c.Session.RefreshThreshold = defaultRefreshThreshold
	}
	if c.Session.IdleTimeout <= 0 {
		c.Session.IdleTimeout = defaultIdleTimeout
	}
	if c.Session.TokenTTL <= 0 {
		c.Session.TokenTTL = defaultSessionTokenTTL
	}

	if c.Gateway == nil {
		c.Gateway = &GatewayConfig{}
	}
	if c.Gateway.RefreshMargin <= 0 {
		c.Gateway.RefreshMargin = defaultRefreshMargin
	}

	if c.Upload == nil {
		c.Upload = &UploadConfig{}
	}
	if c.Upload.MaxSizeBytes <= 0 {
		c.Upload.MaxSizeBytes = defaultUploadMaxSize
	}
	if c.Upload.Timeout <= 0 {
		c.Upload.Timeout = defaultUploadTimeout
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
	}

	if c.Storefront == nil {
		c.Storefront = &StorefrontConfig{}
	}
	if c.Storefront.MessagingHost == "" {
		c.Storefront.MessagingHost = defaultMessagingHost
	}
	if c.Storefront.CountryCode == "" {
		c.Storefront.CountryCode = defaultCountryCode
	}
	if c.Storefront.LowStockThreshold <= 0 {
		c.Storefront.LowStockThreshold = defaultLowStock
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
