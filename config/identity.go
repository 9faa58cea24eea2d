package config

// ClaimPathsConfig overrides where in the provider's claims payload each
// profile field is read from. Paths are JMESPath expressions, so nested
// payloads like "user.contact.email" work without code changes.
type ClaimPathsConfig struct {
	Subject     string `env:"SUBJECT_PATH"      envDefault:"sub"`
	DisplayName string `env:"DISPLAY_NAME_PATH" envDefault:"name"`
	Email       string `env:"EMAIL_PATH"        envDefault:"email"`
	Roles       string `env:"ROLES_PATH"        envDefault:"roles"`
}

// IdentityConfig groups identity resolution and provisioning configuration.
type IdentityConfig struct {
	// Provider is the short name the external IdP is registered under. It
	// namespaces identity-map keys and the per-account reverse link.
	Provider string `env:"PROVIDER" envDefault:"oidc"`

	// AdminRole is the provider role that marks an identity as privileged.
	AdminRole string `env:"ADMIN_ROLE" envDefault:"admin"`

	// PrivilegedGroup is the local group privileged identities are added to.
	PrivilegedGroup string `env:"PRIVILEGED_GROUP" envDefault:"administrators"`

	// Claims configures where profile fields live in the claims payload.
	Claims ClaimPathsConfig `envPrefix:"CLAIM_"`
}

// Sanitize applies guardrails to identity configuration values.
func (c *IdentityConfig) Sanitize() {
	if c.Provider == "" {
		c.Provider = "oidc"
	}
	if c.PrivilegedGroup == "" {
		c.PrivilegedGroup = "administrators"
	}
}
