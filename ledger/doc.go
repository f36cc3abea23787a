/*
Ledger contract is a contract deployed in CoTrain chain.

Ledger contract stores one escrow record per submitted training sample.
Records are keyed by a 32-byte commitment of the (sample, label, time,
submitter) tuple computed by the Trainer contract, which is the only
account allowed to mutate the ledger. Raw sample payloads are never
stored; they are reconstructed externally from contract notifications.

A record is live while its submitter is set and its claimable amount is
above zero. Drained records stay in storage for audit and can be
overwritten by a fresh submission of the same tuple. The claimable
amount only ever decreases: refunds drain it in full and report rewards
are debited from it, so the total paid out for one record can never
exceed its initial deposit. Each address can have at most one accepted
claim per record.

Lookup methods take the full identifying tuple and re-validate the
label, time and submitter against the stored record even though the key
already commits to them, guarding against commitment collisions.

# Contract notifications

ContributionAdded notification. This notification is produced when a new
escrow record is created.

	ContributionAdded:
	  - name: key
	    type: ByteArray
	  - name: submitter
	    type: Hash160
	  - name: label
	    type: Integer
	  - name: time
	    type: Integer
	  - name: deposit
	    type: Integer

RefundIssued notification. This notification is produced when the
remaining claimable amount is drained back to the submitter. It is only
persisted if the surrounding refund transaction succeeds.

	RefundIssued:
	  - name: key
	    type: ByteArray
	  - name: claimant
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: numClaims
	    type: Integer
*/
package ledger
