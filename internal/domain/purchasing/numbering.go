package purchasing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// RequisitionPrefix prefijo de los códigos de requerimiento.
const RequisitionPrefix = "RQ"

// PrefixFor prefijo de numeración según el tipo de orden.
func PrefixFor(t entity.OrderType) (string, error) {
	switch t {
	case entity.OrderTypeService:
		return "S", nil
	case entity.OrderTypePurchase:
		return "C", nil
	}
	return "", fmt.Errorf("purchasing: tipo de orden desconocido %q", t)
}

// FormatNumber arma "{PREFIX}-{YEAR}-{NNNN}".
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Pattern patrón LIKE de los números de un prefijo y año ("C-2025-%").
func Pattern(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-%%", prefix, year)
}

// ParseSequence extrae el sufijo numérico (último segmento separado por '-').
func ParseSequence(number string) (int, bool) {
	i := strings.LastIndex(number, "-")
	if i < 0 || i == len(number)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(number[i+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextSequence máximo sufijo de los números de prefix/year más uno; 1 si no hay ninguno.
func NextSequence(existing []string, prefix string, year int) int {
	head := fmt.Sprintf("%s-%d-", prefix, year)
	max := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, head) {
			continue
		}
		if seq, ok := ParseSequence(n); ok && seq > max {
			max = seq
		}
	}
	return max + 1
}
