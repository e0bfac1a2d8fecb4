package pipeline

// SampleLease is a short commercial lease used by `lexscan sample` and
// `lexscan analyze --sample`.
const SampleLease = `COMMERCIAL LEASE AGREEMENT

This Lease Agreement is made on March 1, 2025, between Harbor Point Holdings LLC (the "Landlord") and Meridian Coffee Company (the "Tenant") for the premises located at 48 Wharf Street, Suite 2, Portland, Maine 04101.

WHEREAS the Landlord owns the property and the Tenant wishes to lease the premises for the operation of a cafe, the parties agree as follows.

1. TERM. The term of this lease shall begin on April 1, 2025, and shall continue for a period of thirty-six (36) months unless terminated earlier under this agreement.

2. RENT. The Tenant shall pay monthly rent of $4,500 on the first day of each month. A late fee of $150 shall apply to any payment received after the 5th day of the month.

3. SECURITY DEPOSIT. Upon signing this agreement the Tenant shall pay a security deposit of $9,000. The Landlord shall return the deposit within 30 days after the end of the lease term, less any amounts applied to unpaid rent or damage to the premises.

4. USE OF PREMISES. The Tenant shall use the premises only as a cafe and shall comply with all applicable laws. The Tenant shall not assign this lease or sublet the premises without the written consent of the Landlord.

5. MAINTENANCE AND REPAIRS. The Landlord shall maintain the roof, structure and common areas of the property. The Tenant shall be responsible for routine maintenance and minor repairs inside the premises.

6. INSURANCE. The Tenant shall maintain general liability insurance of not less than $1,000,000 and shall name the Landlord as an additional insured.

7. DEFAULT. If the Tenant fails to pay rent within 10 days after written notice, the Landlord may terminate this lease. In the event of a breach by either party, the other party shall be entitled to recover reasonable costs.

8. NOTICE. Any notice under this agreement shall be in writing and delivered to the addresses stated above.

This agreement constitutes the entire agreement between the parties and may be amended only in writing signed by both parties.

IN WITNESS WHEREOF, the parties have executed this lease as of the date first written above.

Landlord: Harbor Point Holdings LLC
Tenant: Meridian Coffee Company
`
