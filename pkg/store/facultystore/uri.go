package facultystore

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const Scheme = "faculty"

type URIError struct {
	URI     string
	Message string
}

func (e *URIError) Error() string {
	return e.Message
}

// ParseURI extracts the project id from a store URI. The project id lives in
// the path; the authority component is reserved.
func ParseURI(uri string) (uuid.UUID, error) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != Scheme {
		return uuid.Nil, &URIError{URI: uri, Message: "Not a faculty URI: " + uri}
	}

	if parsed.Host != "" {
		return uuid.Nil, &URIError{
			URI: uri,
			Message: fmt.Sprintf(
				"Invalid URI %s. Netloc is reserved. Did you mean 'faculty:/%s'?",
				uri,
				parsed.Host,
			),
		}
	}

	path := parsed.Path
	if parsed.Opaque != "" {
		path = parsed.Opaque
	}

	segment := strings.Trim(path, "/")

	projectID, err := uuid.Parse(segment)
	if err != nil {
		return uuid.Nil, &URIError{
			URI:     uri,
			Message: fmt.Sprintf("%s in given URI %s is not a valid UUID", segment, uri),
		}
	}

	return projectID, nil
}
