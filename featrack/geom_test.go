package featrack

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestChebyshevDistance(t *testing.T) {
	p1 := Point{X: 40, Y: 40}
	p2 := Point{X: 45, Y: 49}
	correctAnswer := 9.0
	answer := chebyshevDistance(p1, p2)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestRectPointFrom(t *testing.T) {
	rect := NewRectFrom(image.Rect(10, 20, 40, 60))
	if rect != (Rectangle{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("Wrong rectangle: %v", rect)
	}
	point := NewPointFrom(image.Pt(7, 9))
	if point != (Point{X: 7, Y: 9}) {
		t.Errorf("Wrong point: %v", point)
	}
}
