package crypto

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
)

// Language names a BIP-39 wordlist.
type Language string

const (
	English            Language = "english"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	Czech              Language = "czech"
	French             Language = "french"
	Italian            Language = "italian"
	Japanese           Language = "japanese"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
)

// DefaultWordCount is the length of generated phrases when none is configured.
const DefaultWordCount = 24

var wordLists = map[Language][]string{
	English:            wordlists.English,
	ChineseSimplified:  wordlists.ChineseSimplified,
	ChineseTraditional: wordlists.ChineseTraditional,
	Czech:              wordlists.Czech,
	French:             wordlists.French,
	Italian:            wordlists.Italian,
	Japanese:           wordlists.Japanese,
	Korean:             wordlists.Korean,
	Spanish:            wordlists.Spanish,
}

// go-bip39 keeps the active wordlist in a package variable.
var wordListMu sync.Mutex

// ParseLanguage maps a configuration name onto a supported wordlist.
func ParseLanguage(name string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	if lang == "" {
		return English, nil
	}
	if _, ok := wordLists[lang]; !ok {
		return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidMnemonic, name)
	}
	return lang, nil
}

func withWordList(lang Language, fn func() error) error {
	list, ok := wordLists[lang]
	if !ok {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidMnemonic, lang)
	}

	wordListMu.Lock()
	defer wordListMu.Unlock()

	prev := bip39.GetWordList()
	bip39.SetWordList(list)
	defer bip39.SetWordList(prev)

	return fn()
}

// entropyBits returns the entropy size for a phrase of words words (11 bits per word,
// one checksum bit per 32 entropy bits).
func entropyBits(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words / 3 * 32, nil
	default:
		return 0, fmt.Errorf("%w: word count %d not in {12,15,18,21,24}", ErrInvalidMnemonic, words)
	}
}

// GenerateMnemonic creates a new random phrase in lang.
func GenerateMnemonic(lang Language, words int) (string, error) {
	if words == 0 {
		words = DefaultWordCount
	}
	bits, err := entropyBits(words)
	if err != nil {
		return "", err
	}

	var mnemonic string
	err = withWordList(lang, func() error {
		entropy, err := bip39.NewEntropy(bits)
		if err != nil {
			return fmt.Errorf("generate entropy: %w", err)
		}
		mnemonic, err = bip39.NewMnemonic(entropy)
		if err != nil {
			return fmt.Errorf("generate mnemonic: %w", err)
		}
		return nil
	})
	return mnemonic, err
}

// ParseMnemonic validates words and checksum of phrase against the lang wordlist and
// returns its canonical form: words separated by a single ASCII space.
func ParseMnemonic(lang Language, phrase string) (string, error) {
	canonical := strings.Join(strings.Fields(phrase), " ")
	if canonical == "" {
		return "", fmt.Errorf("%w: mnemonic required", ErrInvalidMnemonic)
	}

	err := withWordList(lang, func() error {
		if _, err := bip39.EntropyFromMnemonic(canonical); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return canonical, nil
}

// ValidateMnemonic checks phrase against the lang wordlist (correct word count, valid words,
// valid checksum).
func ValidateMnemonic(lang Language, phrase string) bool {
	_, err := ParseMnemonic(lang, phrase)
	return err == nil
}
