package exclude

import "fmt"

var (
	errEmpty       = fmt.Errorf("empty pattern")
	errRoot        = fmt.Errorf("pattern targets the scan root")
	errSlashInName = fmt.Errorf("name patterns cannot contain '/'")
	errSyntax      = fmt.Errorf("malformed glob")
)
