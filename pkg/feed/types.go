package feed

import (
	"encoding/xml"
)

// AtomFeed represents the root Atom 1.0 element
type AtomFeed struct {
	XMLName   xml.Name     `xml:"http://www.w3.org/2005/Atom feed"`
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Subtitle  string       `xml:"subtitle,omitempty"`
	Updated   string       `xml:"updated"`
	Author    *AtomAuthor  `xml:"author,omitempty"`
	Generator string       `xml:"generator,omitempty"`
	Links     []AtomLink   `xml:"link"`
	Archive   *ArchiveMark `xml:"http://purl.org/syndication/history/1.0 archive,omitempty"`
	Entries   []AtomEntry  `xml:"entry"`
}

// ArchiveMark is the RFC 5005 marker of an archive document
type ArchiveMark struct{}

// AtomAuthor represents a person construct
type AtomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri,omitempty"`
}

// AtomLink represents an Atom link element
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

// AtomText represents a text construct with a type attribute
type AtomText struct {
	Type string `xml:"type,attr,omitempty"`
	Body string `xml:",chardata"`
}

// AtomEntry represents an entry in an Atom feed
type AtomEntry struct {
	ID        string     `xml:"id"`
	Title     string     `xml:"title"`
	Links     []AtomLink `xml:"link"`
	Published string     `xml:"published,omitempty"`
	Updated   string     `xml:"updated"`
	Summary   *AtomText  `xml:"summary,omitempty"`
	Content   *AtomText  `xml:"content,omitempty"`
}
