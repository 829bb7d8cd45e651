package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ProviderTelegram is the provider name assigned by the upstream login
// strategy and stored with every linked identity.
const ProviderTelegram = "telegram"
