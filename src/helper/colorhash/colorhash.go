package colorhash

import (
	"crypto/sha256"
	"fmt"
	"math"
	"sync"
)

// DefaultCategory é usada quando o nó não declara categoria.
const DefaultCategory = "Default"

// Assigner mapeia uma categoria arbitrária para uma cor determinística.
// Mesmo input, mesma cor — dentro do processo e entre processos, já que a
// cor deriva de um hash puro e não de sorteio. Resultados são memoizados.
type Assigner struct {
	mu    sync.RWMutex
	cache map[string]string
}

func NewAssigner() *Assigner {
	return &Assigner{
		cache: make(map[string]string),
	}
}

// ColorFor devolve a cor "#rrggbb" da categoria. Categoria vazia cai na
// DefaultCategory antes do hash. Nunca falha.
func (a *Assigner) ColorFor(category string) string {
	if category == "" {
		category = DefaultCategory
	}

	a.mu.RLock()
	color, ok := a.cache[category]
	a.mu.RUnlock()
	if ok {
		return color
	}

	color = hashColor(category)

	a.mu.Lock()
	a.cache[category] = color
	a.mu.Unlock()

	return color
}

// hashColor deriva HSL dos primeiros 4 bytes do digest:
// hue dos bytes [0:2] mod 360, saturação do byte 2 em [0.5, 0.7],
// luminosidade do byte 3 em [0.45, 0.55].
func hashColor(category string) string {
	digest := sha256.Sum256([]byte(category))

	hue := float64((uint32(digest[0])<<8 | uint32(digest[1])) % 360)
	saturation := 0.5 + float64(digest[2])/255.0*0.2
	lightness := 0.45 + float64(digest[3])/255.0*0.1

	r, g, b := hslToRGB(hue, saturation, lightness)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// hslToRGB converte HSL (h em graus, s/l em [0,1]) para RGB de 8 bits.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hPrime := h / 60.0
	x := c * (1 - math.Abs(math.Mod(hPrime, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case hPrime < 1:
		r, g, b = c, x, 0
	case hPrime < 2:
		r, g, b = x, c, 0
	case hPrime < 3:
		r, g, b = 0, c, x
	case hPrime < 4:
		r, g, b = 0, x, c
	case hPrime < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)),
		uint8(math.Round((g + m) * 255)),
		uint8(math.Round((b + m) * 255))
}
