package polygon

import "github.com/Faultbox/polyfx/pkg/math"

// tessellateHexagons lays out gy+1 rows of hexagons centered on the row
// lines. Odd rows hold one extra hexagon shifted half a cell left, and the
// outer rows and columns are clipped to the rect.
func tessellateHexagons(rect math.Rect, gx, gy int, thickness float32) (*Mesh, error) {
	gx, gy, err := fitGrid(rect, gx, gy, MinHexCell)
	if err != nil {
		return nil, err
	}

	cellW := float32(rect.W()) / float32(gx)
	cellH := float32(rect.H()) / float32(gy)
	halfW := cellW / 2
	twoThirdsH := 2 * cellH / 3
	thirdH := cellH / 3
	halfThick := thickness / 2

	polys := make([]*Polygon, 0, (gy+1)*gx+(gy+1)/2)
	for y := 0; y <= gy; y++ {
		posY := float32(rect.Y1) + cellH*float32(y)
		perRow := gx
		if y%2 == 1 {
			perRow = gx + 1
		}

		topY, topSideY := -twoThirdsH, -thirdH
		bottomY, bottomSideY := twoThirdsH, thirdH
		switch y {
		case 0:
			topY, topSideY = 0, 0
		case gy:
			bottomY, bottomSideY = 0, 0
		}

		for x := 0; x < perRow; x++ {
			leftX, rightX := -halfW, halfW
			if y%2 == 1 {
				if x == 0 {
					leftX = 0
				} else if x == perRow-1 {
					rightX = 0
				}
			}

			shift := float32(0.5)
			if y%2 == 1 {
				shift = 0
			}
			center := math.Vec3{X: float32(rect.X1) + cellW*(float32(x)+shift), Y: posY, Z: -halfThick}

			outline := []math.Vec2{
				{X: 0, Y: topY},
				{X: leftX, Y: topSideY},
				{X: leftX, Y: bottomSideY},
				{X: 0, Y: bottomY},
				{X: rightX, Y: bottomSideY},
				{X: rightX, Y: topSideY},
			}
			p := NewPolygon(outline, center, halfThick)
			p.CenterRel = relativeTo(rect, center)
			polys = append(polys, p)
		}
	}

	m := NewMesh(polys, thickness)
	m.GridX, m.GridY = gx, gy
	return m, nil
}
