package galaxy

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// DefaultSeed is the seed the shard map is generated from unless configured otherwise
const DefaultSeed = "Test application"

// GeneratorOptions bounds the generated map
type GeneratorOptions struct {
	Systems    int
	MinPlanets int
	MaxPlanets int
	MaxDeposit int
}

// DefaultGeneratorOptions returns the shard's standard map dimensions
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{Systems: 10, MinPlanets: 2, MaxPlanets: 6, MaxDeposit: 500}
}

var syllables = []string{
	"al", "be", "cor", "da", "el", "fa", "gor", "hel", "ix", "ka",
	"lu", "mar", "nel", "or", "pra", "qua", "ri", "sol", "ta", "ul",
	"ve", "wen", "xa", "yor", "zin",
}

// SeedRand derives a deterministic random source from a seed string and a purpose label
func SeedRand(seed, label string) *rand.Rand {
	sum := blake3.Sum256([]byte(seed + "/" + label))
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(sum[:8]))))
}

// Generate produces the same specification for the same seed and options
func Generate(seed string, opts GeneratorOptions) *SectorSpecification {
	if opts.Systems <= 0 {
		opts = DefaultGeneratorOptions()
	}
	if opts.MaxPlanets < opts.MinPlanets {
		opts.MaxPlanets = opts.MinPlanets
	}
	if opts.MaxDeposit <= 0 {
		opts.MaxDeposit = 1
	}

	rng := SeedRand(seed, "sector")
	used := make(map[string]bool)
	spec := &SectorSpecification{Seed: seed}

	for i := 0; i < opts.Systems; i++ {
		sysName := uniqueName(rng, used)
		sys := SystemSpecification{Name: sysName}

		count := opts.MinPlanets + rng.Intn(opts.MaxPlanets-opts.MinPlanets+1)
		for j := 0; j < count; j++ {
			planetRng := SeedRand(seed, fmt.Sprintf("%s/%d", sysName, j))
			sys.Planets = append(sys.Planets, PlanetSpecification{
				Name:    fmt.Sprintf("%s %s", sysName, romanNumeral(j+1)),
				Size:    1 + planetRng.Intn(10),
				Deposit: generateDeposit(planetRng, opts.MaxDeposit),
			})
		}
		spec.Systems = append(spec.Systems, sys)
	}
	return spec
}

func generateDeposit(rng *rand.Rand, max int) map[string]int {
	deposit := make(map[string]int)
	for _, kind := range shared.AllResourceKinds {
		// roughly two thirds of the kinds are present on any planet
		if rng.Intn(3) == 0 {
			continue
		}
		deposit[string(kind)] = 1 + rng.Intn(max)
	}
	return deposit
}

func uniqueName(rng *rand.Rand, used map[string]bool) string {
	for {
		var b strings.Builder
		parts := 2 + rng.Intn(2)
		for i := 0; i < parts; i++ {
			b.WriteString(syllables[rng.Intn(len(syllables))])
		}
		name := strings.ToUpper(b.String()[:1]) + b.String()[1:]
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func romanNumeral(n int) string {
	numerals := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}
	if n >= 1 && n <= len(numerals) {
		return numerals[n-1]
	}
	return fmt.Sprintf("%d", n)
}
