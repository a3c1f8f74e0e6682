// Package client builds handles from a shared option collection and runs
// them, classifying the outcome.
//
// # Building a Factory
//
// Use [NewFactory] with functional options. The live engine is used unless
// another is given:
//
//	f, err := client.NewFactory(
//		client.WithInsecure(),
//		client.WithHeaders([]string{"Accept: application/json"}),
//		client.WithLogFile("/var/log/xfer/transfers.log"),
//	)
//	defer f.Close()
//
// # Running Transfers
//
// A [Handle] freezes the factory's options when it is created. [Try] runs
// it once and never fails on a bad status; [Exec] promotes anything but a
// 200 to a [*RequestError]:
//
//	h, err := f.CreateHandle("https://api.example.com/v1/thing", nil)
//	res, err := client.Exec(ctx, h, client.WithResponseDir("/tmp/responses"))
//	fmt.Println(res.Response())
//
// POST handles attach form fields to their own snapshot only:
//
//	h, err := f.CreatePostHandle(u, map[string]string{"q": "go"}, nil)
//
// Tests can swap the engine for [github.com/adamwoolhether/xfer/engine/fake].
package client
