package rsa

// cantorPair computes the Cantor pairing function k(x,y) = ((x+y)(x+y+1))/2 + y,
// used to derive a unique link-key from an ordered vertex pair.
func cantorPair(x, y Vertex) uint64 {
	xu, yu := uint64(x), uint64(y)
	return ((xu+yu)*(xu+yu+1))/2 + yu
}
