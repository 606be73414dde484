package domain

import "fmt"

// StatusLine - текст статус-панели игрока.
func StatusLine(points int) string {
	if points == 0 {
		return "No points yet..."
	}
	return fmt.Sprintf("%d points accumulated", points)
}
