package ga_test

import (
	"testing"

	"github.com/katalvlaran/tourga/distance"
	"github.com/katalvlaran/tourga/ga"
	"github.com/katalvlaran/tourga/tour"
)

func BenchmarkCrossover(b *testing.B) {
	rng := tour.NewRNG(seedDet)
	p1 := tour.Random(200, rng)
	p2 := tour.Random(200, rng)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ga.Crossover(p1, p2, rng)
	}
}

func BenchmarkTick(b *testing.B) {
	cities := distance.RandomCities(100, 800, 600, tour.NewRNG(seedDet))
	cfg := smallConfig(500, 1<<30)
	s := ga.NewScheduler()
	if err := s.Start(cfg, cities); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Tick()
	}
}
