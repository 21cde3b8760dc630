package rsa

import "github.com/sirupsen/logrus"

// Configuration fully specifies one simulation run: the topology, traffic
// mix, load parameters, and the collaborators (logger, PRNG handle) the
// Kernel needs but does not own construction of.
type Configuration struct {
	Graph *Graph

	IgnoreFirst  bool
	SamplingTime float64
	TimeUnits    float64
	ArrivalRate  float64
	ServiceRate  float64
	Iterations   int

	FSUsPerLink int

	RequestTypes []*RequestType

	Logger *logrus.Logger
	Rand   *RandomNumberService
}
