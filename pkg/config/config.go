package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/pathcodec/pkg/util"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel       string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	BatchWorkers   int    `mapstructure:"BATCH_WORKERS" validate:"min=1,max=1024"`
	BatchQueueSize int    `mapstructure:"BATCH_QUEUE_SIZE" validate:"min=1"`
	OsmMinWayNodes int    `mapstructure:"OSM_MIN_WAY_NODES" validate:"min=2"`
	OsmHighwayOnly bool   `mapstructure:"OSM_HIGHWAY_ONLY"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BATCH_WORKERS", 8)
	v.SetDefault("BATCH_QUEUE_SIZE", 1024)
	v.SetDefault("OSM_MIN_WAY_NODES", 2)
	v.SetDefault("OSM_HIGHWAY_ONLY", true)
}

// Load reads ./data/config and the environment into the global viper instance and validates the result.
func Load() (Config, error) {
	if err := util.ReadConfig(); err != nil {
		return Config{}, err
	}
	return FromViper(viper.GetViper())
}

func FromViper(v *viper.Viper) (Config, error) {
	setDefaults(v)

	cfg := Config{
		LogLevel:       v.GetString("LOG_LEVEL"),
		BatchWorkers:   v.GetInt("BATCH_WORKERS"),
		BatchQueueSize: v.GetInt("BATCH_QUEUE_SIZE"),
		OsmMinWayNodes: v.GetInt("OSM_MIN_WAY_NODES"),
		OsmHighwayOnly: v.GetBool("OSM_HIGHWAY_ONLY"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	vv := translateError(err, trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return util.WrapErrorf(err, util.ErrBadParamInput, "invalid config: %s", strings.Join(vvString, "; "))
}

func translateError(err error, trans ut.Translator) (errs []error) {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf("%s", e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
