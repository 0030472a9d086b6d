/*
Package ledger implements the value transfer primitive used by escrows.

Every account owns a single wallet holding a native token balance and a
sorted list of fungible asset holdings. An account must opt in to a
fungible asset before it can receive it; a holding with zero amount marks
an opted in account. Native tokens need no opt in.

Two backends, NativeLedger and AssetLedger, implement the transfer rules
of each asset kind. Controller routes every call to the right backend.
*/
package ledger
