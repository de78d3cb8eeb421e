package pdf

import (
	_ "embed"

	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

// fontFamily DejaVu Sans embebida: cubre tildes, "—", ✓ y ✗.
const fontFamily = "dejavu"

var (
	//go:embed fonts/DejaVuSans.ttf
	dejavuRegular []byte
	//go:embed fonts/DejaVuSans-Bold.ttf
	dejavuBold []byte
)

func customFonts() ([]*entity.CustomFont, error) {
	return repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, dejavuRegular).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, dejavuBold).
		Load()
}
