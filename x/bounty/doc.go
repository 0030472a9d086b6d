/*
Package bounty implements a single-issue bounty escrow.

Every tracked issue owns one Bounty record. The maintainer creates the
bounty, anyone may fund it until the maintainer marks the issue resolved,
and afterwards the maintainer distributes the collected value to
contributors. The maintainer may also refund value back to themselves.

Funds are held by the custody address derived from the issue id and are
moved by a Ledger. Every operation either fully applies, moving value and
updating the record together, or leaves the state untouched.
*/
package bounty
