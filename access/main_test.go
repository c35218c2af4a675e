// access/main_test.go
package access

import (
	"os"
	"testing"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	code := m.Run()
	logger.Sync()
	os.Exit(code)
}
