package trapmap

// Orientation is the side of a directed line a point lies on.
type Orientation int8

const (
	Collinear Orientation = 0
	Left      Orientation = 1
	Right     Orientation = -1
)

func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "Orientation(?)"
	}
}

// Orient classifies c against the directed line from a to b using the sign of the cross
// product (b−a)×(c−a). The comparison with zero is exact, which means that nearly
// collinear points may be classified either way.
//
// In y-up space and with a.X < b.X, [Left] means that c lies above the line.
func Orient(a, b, c Point) Orientation {
	d := b.Sub(a).Cross(c.Sub(a))
	switch {
	case d > 0:
		return Left
	case d < 0:
		return Right
	default:
		return Collinear
	}
}
