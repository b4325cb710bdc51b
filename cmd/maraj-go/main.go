// Command maraj-go runs the product directory API server.
package main

import (
	"log"

	"github.com/MarajLabs/maraj-go/internal/application/startup"
	"github.com/MarajLabs/maraj-go/internal/presentation/http/server"
)

func main() {
	c, err := startup.Boot()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	if err := startup.Run(c, server.New(c)); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
