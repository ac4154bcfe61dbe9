package kdtree

type node struct {
	Key   Point
	Left  *node
	Right *node
}
