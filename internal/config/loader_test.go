package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/smurfwatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.APIKey, convey.ShouldBeEmpty)
				convey.So(cfg.MinDelayMS, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SMURF_API_KEY", "env-key")
			_ = os.Setenv("SMURF_MIN_PEAK_TIER", "21")
			_ = os.Setenv("SMURF_MAX_CURRENT_TIER", "9")
			_ = os.Setenv("SMURF_MIN_GAP", "8")
			_ = os.Setenv("SMURF_FORCE_COLLECT", "false")

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIKey, convey.ShouldEqual, "env-key")
				convey.So(cfg.MinPeakTier, convey.ShouldEqual, 21)
				convey.So(cfg.MaxCurrentTier, convey.ShouldEqual, 9)
				convey.So(cfg.MinGap, convey.ShouldEqual, 8)
				convey.So(cfg.ForceCollect, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			tmpFile := createTempFile("smurf-config-*.yaml", `
addr: ":9090"
acts: 5
min_delay_ms: 500
riot_id_column: "Riot ID"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SMURF_CONFIG", tmpFile)
			_ = os.Setenv("SMURF_ACTS", "4")

			cfg, err := config.Load()

			convey.Convey("Then env vars win over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Acts, convey.ShouldEqual, 4)
				convey.So(cfg.MinDelayMS, convey.ShouldEqual, 500)
				convey.So(cfg.RiotIDColumn, convey.ShouldEqual, "Riot ID")
				convey.So(cfg.MinGap, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When a dotenv file provides the API key", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "smurf.env")
			convey.So(os.WriteFile(path, []byte("SMURF_API_KEY=dotenv-key\nSMURF_MIN_GAP=7\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("SMURF_DOTENV", path)
			_ = os.Setenv("SMURF_MIN_GAP", "9")

			cfg, err := config.Load()

			convey.Convey("Then dotenv fills unset variables only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIKey, convey.ShouldEqual, "dotenv-key")
				convey.So(cfg.MinGap, convey.ShouldEqual, 9)
			})
		})

		convey.Convey("When an explicit dotenv file is missing", func() {
			_ = os.Setenv("SMURF_DOTENV", "/non/existent/smurf.env")

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("smurf-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("SMURF_CONFIG", tmpFile)

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SMURF_MIN_GAP", "not_a_number")

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SMURF_ADDR", "")

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When acts is zero", func() {
			_ = os.Setenv("SMURF_ACTS", "0")

			_, err := config.Load()

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "acts must be at least 1")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SMURF_CONFIG",
		"SMURF_DOTENV",
		"SMURF_ADDR",
		"SMURF_API_KEY",
		"SMURF_ACTS",
		"SMURF_MIN_PEAK_TIER",
		"SMURF_MAX_CURRENT_TIER",
		"SMURF_MIN_GAP",
		"SMURF_FORCE_COLLECT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
