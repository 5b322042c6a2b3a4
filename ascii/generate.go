//go:generate sh -c "cd ../_asm && go run . -out ../ascii/kernel_amd64.s -stubs ../ascii/kernel_amd64.go -pkg ascii"

package ascii
