// Package languages holds the static language registry: supported audio
// languages and the featured translation languages highlighted on the
// dashboard. The data is embedded at build time.
package languages

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/D-z-V/oppia/pkg/models"
)

//go:embed languages.yaml
var registryYAML []byte

type audioLanguage struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

type registryData struct {
	SupportedAudioLanguages      []audioLanguage `yaml:"supported_audio_languages"`
	FeaturedTranslationLanguages []struct {
		LanguageCode string `yaml:"language_code"`
		Explanation  string `yaml:"explanation"`
	} `yaml:"featured_translation_languages"`
}

var (
	byCode   map[string]string
	featured []models.FeaturedLanguage
)

func init() {
	var data registryData
	if err := yaml.Unmarshal(registryYAML, &data); err != nil {
		panic(fmt.Sprintf("languages: parsing embedded registry: %v", err))
	}

	byCode = make(map[string]string, len(data.SupportedAudioLanguages))
	for _, l := range data.SupportedAudioLanguages {
		byCode[l.ID] = l.Description
	}

	featured = make([]models.FeaturedLanguage, 0, len(data.FeaturedTranslationLanguages))
	for _, l := range data.FeaturedTranslationLanguages {
		if _, ok := byCode[l.LanguageCode]; !ok {
			panic(fmt.Sprintf("languages: featured language %q is not a supported audio language", l.LanguageCode))
		}
		featured = append(featured, models.FeaturedLanguage{
			LanguageCode: l.LanguageCode,
			Explanation:  l.Explanation,
		})
	}
}

// IsSupported reports whether the code is a supported audio language.
func IsSupported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Name returns the display name of a supported language code.
func Name(code string) (string, bool) {
	name, ok := byCode[code]
	return name, ok
}

// Featured returns the featured translation languages in registry order.
func Featured() []models.FeaturedLanguage {
	out := make([]models.FeaturedLanguage, len(featured))
	copy(out, featured)
	return out
}
