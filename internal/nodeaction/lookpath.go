package nodeaction

import "os/exec"

func lookPath(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}
