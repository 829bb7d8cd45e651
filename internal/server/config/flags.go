package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/flagx"
)

var ownFlags = []string{"-a", "-m", "-k", "-d", "-s", "-t", "-n", "-x", "-f", "-o", "-u", "-p", "-b", "-g", "-e", "-l", "-z"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (empty disables /metrics)
//	-k string   database driver: pgx or sqlite
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-n string   Telegram bot name
//	-x string   Telegram bot token
//	-f string   file holding the bot token
//	-o string   S3 object key holding the bot token
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-l int      maximum assertion age, seconds
//	-z int      maximum clock skew for future auth_date, seconds (0 = unbounded)
//
// Only these flags are parsed; everything else on the command line is
// ignored (see flagx.FilterArgs).
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port for /metrics")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.BotName, "n", config.BotName, "Telegram bot name")
	fs.StringVar(&config.BotToken, "x", config.BotToken, "Telegram bot token")
	fs.StringVar(&config.BotTokenFile, "f", config.BotTokenFile, "file with the Telegram bot token")
	fs.StringVar(&config.BotTokenS3Key, "o", config.BotTokenS3Key, "S3 key of the Telegram bot token")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	maxAuthAge := fs.Int64("l", int64(config.MaxAuthAge/time.Second), "max assertion age (in seconds)")
	maxClockSkew := fs.Int64("z", int64(config.MaxClockSkew/time.Second), "max future clock skew (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.MaxAuthAge = time.Duration(*maxAuthAge) * time.Second
	config.MaxClockSkew = time.Duration(*maxClockSkew) * time.Second
}
