package domain

// Document is a rendered feed page ready to be committed and published
type Document struct {
	Index   int
	Name    string
	Body    []byte
	Entries int
}
