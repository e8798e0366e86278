// Package lib provides a Go SDK to reserve, release and inspect lab sandboxes
// managed by a Tokalabs style lab controller.
//
// Test harnesses use it to get exclusive access to a sandbox, discover the
// reserved device addresses, usernames and port connections, run test suites
// and release the sandbox when done.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{
//	    Address:  "10.0.0.1",
//	    Username: "admin",
//	    Password: "secret",
//	    Sandbox:  "my-sandbox",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Blocks until the sandbox is available.
//	res, err := client.Reserve(ctx, &lib.ReserveOpts{Timeout: 30 * time.Minute})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Release(context.Background())
//
//	ip, ok, err := client.DeviceIP("dut-1", 0)
//
// # Reservations
//
// [Client.Reserve] polls the controller until the sandbox is available. With
// [ReserveOpts].ForceTakeOwnership a sandbox held by someone else is released
// and reserved again instead of waiting. Cancelling the context stops the wait.
//
// Reserving a blueprint instantiates a child sandbox that holds the devices,
// its name is returned in [Reservation].Child. [Client.Release] releases the
// child, a blueprint can't be released by itself. Use [Client.ReleaseSandbox]
// to release a child reserved by another process.
//
// # Devices
//
// Device queries are answered from the details loaded when the sandbox was
// reserved, or when a reserved sandbox was selected:
//
//	ip, _, _ := client.DeviceIP("dut-1", 0)
//	user, _, _ := client.DeviceUsername("dut-1", 0)
//	pairs, _ := client.DevicePorts("ixia-1", "dut-1", true)
//	for _, p := range pairs {
//	    fmt.Println(p.TrafficGen.ChassisAddress, p.TrafficGen.Slot, p.TrafficGen.Port)
//	}
//
// # Suites
//
//	client.SetKeywords(ctx, "", map[string]string{"vlan": "100"})
//	client.RunSuite(ctx, "smoke")
//	client.WaitForSuite(ctx, "smoke")
//	res, _ := client.Results(ctx)
//	fmt.Println(res.Verdict)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Sandbox, device or result does not exist.
//   - [ErrNotValid]: Invalid input (e.g. no sandbox selected).
//   - [ErrAuthentication]: The controller rejected the credentials.
//   - [ErrNotReserved]: Device queries on a sandbox that is not reserved.
//   - [ErrReservation]: The controller refused a reserve or release.
//   - [ErrInvalidOperation]: The operation doesn't apply (e.g. releasing a blueprint).
//
// Non 2xx controller responses carry an [APIError] with the status code and body,
// use [errors.As] to get it.
//
// # Thread Safety
//
// A [Client] is not safe for concurrent use. Use one client per sandbox.
package lib
